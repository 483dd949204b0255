package splits

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/violet-vault/backend/internal/money"
)

// Totals compares the allocated amount with the transaction amount.
type Totals struct {
	Original         float64 `json:"original"`
	Allocated        float64 `json:"allocated"`
	Remaining        float64 `json:"remaining"`
	IsValid          bool    `json:"isValid"`
	IsOverAllocated  bool    `json:"isOverAllocated"`
	IsUnderAllocated bool    `json:"isUnderAllocated"`
}

// CalculateTotals sums the allocations against the absolute transaction amount.
// The split is valid when less than a cent remains in either direction.
func CalculateTotals(tx Transaction, allocations []Allocation) Totals {
	original := math.Abs(tx.Amount)

	var allocated float64
	for _, a := range allocations {
		if money.Valid(a.Amount) {
			allocated += a.Amount
		}
	}

	remaining := original - allocated

	return Totals{
		Original:         original,
		Allocated:        allocated,
		Remaining:        remaining,
		IsValid:          math.Abs(remaining) < money.Tolerance,
		IsOverAllocated:  remaining < -money.Tolerance,
		IsUnderAllocated: remaining > money.Tolerance,
	}
}

// Validate returns one message per violated rule. An empty result means
// the allocations can be submitted.
func Validate(allocations []Allocation, tx Transaction) []string {
	errs := []string{}

	for i, a := range allocations {
		n := i + 1
		if isBlank(a.Description) {
			errs = append(errs, fmt.Sprintf("Split %d: Description is required", n))
		}
		if isBlank(a.Category) {
			errs = append(errs, fmt.Sprintf("Split %d: Category is required", n))
		}
		if !money.Valid(a.Amount) || a.Amount <= 0 {
			errs = append(errs, fmt.Sprintf("Split %d: Amount must be greater than 0", n))
		}
	}

	totals := CalculateTotals(tx, allocations)
	if !totals.IsValid {
		if totals.IsOverAllocated {
			errs = append(errs, fmt.Sprintf("Total splits (%s) exceed original amount (%s)",
				money.Format(totals.Allocated), money.Format(totals.Original)))
		} else {
			errs = append(errs, fmt.Sprintf("Total splits (%s) are less than original amount (%s)",
				money.Format(totals.Allocated), money.Format(totals.Original)))
		}
	}

	return errs
}

// AutoBalance spreads the remaining difference evenly over all allocations
// and rounds each amount to the cent. A sub-cent drift may remain.
func AutoBalance(allocations []Allocation, tx Transaction) []Allocation {
	totals := CalculateTotals(tx, allocations)
	if totals.IsValid || len(allocations) == 0 {
		return clone(allocations)
	}

	adjustment := totals.Remaining / float64(len(allocations))

	result := clone(allocations)
	for i := range result {
		result[i].Amount = money.Round2(result[i].Amount + adjustment)
	}
	return result
}

// SplitEvenly gives every allocation the same rounded share. The last one
// takes whatever is left so the amounts add up to the transaction amount.
func SplitEvenly(allocations []Allocation, tx Transaction) []Allocation {
	if len(allocations) == 0 {
		return clone(allocations)
	}

	n := int64(len(allocations))
	original := decimal.NewFromFloat(math.Abs(tx.Amount))
	share := original.Div(decimal.NewFromInt(n)).Round(2)
	last := original.Sub(share.Mul(decimal.NewFromInt(n - 1))).Round(2)

	result := clone(allocations)
	for i := range result {
		if int64(i) == n-1 {
			result[i].Amount = last.InexactFloat64()
		} else {
			result[i].Amount = share.InexactFloat64()
		}
	}
	return result
}

func clone(allocations []Allocation) []Allocation {
	if allocations == nil {
		return nil
	}
	result := make([]Allocation, len(allocations))
	copy(result, allocations)
	return result
}
