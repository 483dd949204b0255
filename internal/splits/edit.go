package splits

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/violet-vault/backend/internal/money"
)

// Field is an editable attribute of an allocation.
type Field string

const (
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
	FieldCategory    Field = "category"
	FieldEnvelopeID  Field = "envelopeId"
)

var (
	ErrUnknownField = errors.New("unknown split field")
	ErrInvalidValue = errors.New("invalid value for split field")
)

func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldDescription, FieldAmount, FieldCategory, FieldEnvelopeID:
		return Field(s), nil
	}
	return "", fmt.Errorf("%w: '%s'", ErrUnknownField, s)
}

// Defaults pre-fill a new allocation.
type Defaults struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	EnvelopeID  string `json:"envelopeId"`
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Add appends an allocation holding the unallocated remainder, or zero
// when the transaction is already fully allocated.
func Add(allocations []Allocation, tx Transaction, defaults Defaults) []Allocation {
	remaining := CalculateTotals(tx, allocations).Remaining

	category := defaults.Category
	if category == "" {
		category = tx.Category
	}

	return append(clone(allocations), Allocation{
		ID:          newID(),
		Description: defaults.Description,
		Amount:      math.Max(0, money.Round2(remaining)),
		Category:    category,
		EnvelopeID:  defaults.EnvelopeID,
	})
}

// UpdateField sets one field of the allocation with the given ID.
//
// Changing the category also moves the allocation to the envelope matching
// the new category, if there is one. An unknown ID leaves the allocations
// unchanged.
func UpdateField(allocations []Allocation, id string, field Field, value any, envelopes []Envelope) ([]Allocation, error) {
	result := clone(allocations)

	for i := range result {
		if result[i].ID != id {
			continue
		}

		a := &result[i]
		switch field {
		case FieldAmount:
			amount, err := toAmount(value)
			if err != nil {
				return allocations, err
			}
			a.Amount = amount
		case FieldDescription, FieldCategory, FieldEnvelopeID:
			s, ok := value.(string)
			if !ok {
				return allocations, fmt.Errorf("%w %s: %v", ErrInvalidValue, field, value)
			}

			switch field {
			case FieldDescription:
				a.Description = s
			case FieldEnvelopeID:
				a.EnvelopeID = s
			case FieldCategory:
				a.Category = s
				if e := FindEnvelopeForCategory(envelopes, s); e != nil {
					a.EnvelopeID = e.ID
				}
			}
		default:
			return allocations, fmt.Errorf("%w: '%s'", ErrUnknownField, field)
		}
	}

	return result, nil
}

func toAmount(value any) (float64, error) {
	var amount float64

	switch v := value.(type) {
	case float64:
		amount = v
	case int:
		amount = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w amount: %s", ErrInvalidValue, v)
		}
		amount = parsed
	default:
		return 0, fmt.Errorf("%w amount: %v", ErrInvalidValue, value)
	}

	if !money.Valid(amount) || amount < 0 {
		return 0, fmt.Errorf("%w amount: %v", ErrInvalidValue, value)
	}
	return amount, nil
}

// Remove deletes the allocation with the given ID. A transaction always
// keeps at least one allocation, so a single allocation is never removed.
func Remove(allocations []Allocation, id string) []Allocation {
	if len(allocations) <= 1 {
		return clone(allocations)
	}

	result := make([]Allocation, 0, len(allocations))
	for _, a := range allocations {
		if a.ID != id {
			result = append(result, a)
		}
	}
	return result
}
