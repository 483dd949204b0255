// Package splits breaks one transaction into category allocations whose
// amounts add up to the transaction amount.
//
// All functions return new slices and never modify their input.
package splits

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Item is one line of an itemized receipt.
type Item struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price,omitempty"`
	TotalPrice float64 `json:"totalPrice,omitempty"`
	Quantity   int     `json:"quantity,omitempty"`
	Category   string  `json:"category,omitempty"`
}

// amount is the total price, or the unit price when no total is known.
func (i Item) amount() float64 {
	if i.TotalPrice != 0 {
		return math.Abs(i.TotalPrice)
	}
	return math.Abs(i.Price)
}

// SplitData links a split part to the transaction it came from.
type SplitData struct {
	SplitIndex            int    `json:"splitIndex"`
	TotalSplits           int    `json:"totalSplits"`
	OriginalTransactionID string `json:"originalTransactionId"`
	IsOriginalItem        bool   `json:"isOriginalItem"`
	OriginalItem          *Item  `json:"originalItem,omitempty"`
}

// Metadata is the receipt information attached to a transaction.
type Metadata struct {
	Items     []Item     `json:"items,omitempty"`
	Shipping  float64    `json:"shipping,omitempty"`
	Tax       float64    `json:"tax,omitempty"`
	SplitData *SplitData `json:"splitData,omitempty"`
}

// Transaction is the transaction being split, and the shape of each part.
type Transaction struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	EnvelopeID  string    `json:"envelopeId"`
	Account     string    `json:"account"`
	Type        string    `json:"type"`
	Metadata    *Metadata `json:"metadata,omitempty"`

	ParentTransactionID string  `json:"parentTransactionId,omitempty"`
	IsSplit             bool    `json:"isSplit,omitempty"`
	SplitIndex          int     `json:"splitIndex,omitempty"`
	SplitTotal          int     `json:"splitTotal,omitempty"`
	OriginalAmount      float64 `json:"originalAmount,omitempty"`
}

// Envelope is what category lookups match against.
type Envelope struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Allocation is one part of a split. Amounts are never negative, the sign
// of the transaction is applied by PrepareForSubmission.
type Allocation struct {
	ID             string  `json:"id"`
	Description    string  `json:"description"`
	Amount         float64 `json:"amount"`
	Category       string  `json:"category"`
	EnvelopeID     string  `json:"envelopeId"`
	IsOriginalItem bool    `json:"isOriginalItem"`
	OriginalItem   *Item   `json:"originalItem,omitempty"`
}

func newID() string {
	return uuid.NewString()
}

// FindEnvelopeForCategory returns the first envelope whose name or category
// equals category, ignoring case. It returns nil when there is none.
func FindEnvelopeForCategory(envelopes []Envelope, category string) *Envelope {
	if category == "" {
		return nil
	}

	fold := cases.Fold()
	want := fold.String(category)

	for i := range envelopes {
		e := &envelopes[i]
		if fold.String(e.Name) == want || (e.Category != "" && fold.String(e.Category) == want) {
			return e
		}
	}
	return nil
}

func envelopeIDFor(envelopes []Envelope, category string) string {
	if e := FindEnvelopeForCategory(envelopes, category); e != nil {
		return e.ID
	}
	return ""
}

// Initialize creates the first allocations for a transaction.
//
// A receipt with more than one item gets one allocation per item, plus one
// for shipping and one for tax when they are positive. Anything else gets
// a single allocation for the whole amount.
func Initialize(tx Transaction, envelopes []Envelope) []Allocation {
	if tx.Metadata != nil && len(tx.Metadata.Items) > 1 {
		return fromItems(tx, envelopes)
	}

	description := tx.Description
	if description == "" {
		description = "Transaction Split"
	}

	return []Allocation{{
		ID:          newID(),
		Description: description,
		Amount:      math.Abs(tx.Amount),
		Category:    tx.Category,
		EnvelopeID:  tx.EnvelopeID,
	}}
}

func fromItems(tx Transaction, envelopes []Envelope) []Allocation {
	items := tx.Metadata.Items
	result := make([]Allocation, 0, len(items)+2)

	for i, item := range items {
		name := item.Name
		if name == "" {
			name = fmt.Sprintf("Item %d", i+1)
		}

		category := item.Category
		if category == "" {
			category = tx.Category
		}

		original := item
		result = append(result, Allocation{
			ID:             newID(),
			Description:    name,
			Amount:         item.amount(),
			Category:       category,
			EnvelopeID:     envelopeIDFor(envelopes, category),
			IsOriginalItem: true,
			OriginalItem:   &original,
		})
	}

	if tx.Metadata.Shipping > 0 {
		result = append(result, Allocation{
			ID:          newID(),
			Description: "Shipping & Handling",
			Amount:      tx.Metadata.Shipping,
			Category:    "Shipping",
		})
	}

	if tx.Metadata.Tax > 0 {
		result = append(result, Allocation{
			ID:          newID(),
			Description: "Sales Tax",
			Amount:      tx.Metadata.Tax,
			Category:    "Tax",
		})
	}

	return result
}
