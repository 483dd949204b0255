package splits

import "fmt"

// Summary is the state of a split as shown before submission.
type Summary struct {
	TotalSplits      int      `json:"totalSplits"`
	OriginalAmount   float64  `json:"originalAmount"`
	AllocatedAmount  float64  `json:"allocatedAmount"`
	RemainingAmount  float64  `json:"remainingAmount"`
	IsValid          bool     `json:"isValid"`
	IsBalanced       bool     `json:"isBalanced"`
	ValidationErrors []string `json:"validationErrors"`
	CanSubmit        bool     `json:"canSubmit"`
}

// Summarize combines totals and validation for a split.
func Summarize(allocations []Allocation, tx Transaction) Summary {
	totals := CalculateTotals(tx, allocations)
	errs := Validate(allocations, tx)
	valid := len(errs) == 0 && totals.IsValid

	return Summary{
		TotalSplits:      len(allocations),
		OriginalAmount:   totals.Original,
		AllocatedAmount:  totals.Allocated,
		RemainingAmount:  totals.Remaining,
		IsValid:          valid,
		IsBalanced:       totals.IsValid,
		ValidationErrors: errs,
		CanSubmit:        valid && len(allocations) > 0,
	}
}

// PrepareForSubmission turns every allocation into a transaction of its own.
//
// The parts carry the sign of the original transaction, its date, account
// and type, and point back to it through ParentTransactionID.
func PrepareForSubmission(allocations []Allocation, tx Transaction) []Transaction {
	result := make([]Transaction, 0, len(allocations))

	for i, a := range allocations {
		amount := a.Amount
		if tx.Amount < 0 {
			amount = -amount
		}

		metadata := Metadata{}
		if tx.Metadata != nil {
			metadata = *tx.Metadata
		}
		metadata.SplitData = &SplitData{
			SplitIndex:            i,
			TotalSplits:           len(allocations),
			OriginalTransactionID: tx.ID,
			IsOriginalItem:        a.IsOriginalItem,
			OriginalItem:          a.OriginalItem,
		}

		result = append(result, Transaction{
			ID:                  fmt.Sprintf("%s_split_%d", tx.ID, i),
			Date:                tx.Date,
			Description:         a.Description,
			Amount:              amount,
			Category:            a.Category,
			EnvelopeID:          a.EnvelopeID,
			Account:             tx.Account,
			Type:                tx.Type,
			Metadata:            &metadata,
			ParentTransactionID: tx.ID,
			IsSplit:             true,
			SplitIndex:          i,
			SplitTotal:          len(allocations),
			OriginalAmount:      tx.Amount,
		})
	}

	return result
}
