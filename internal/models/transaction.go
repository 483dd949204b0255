package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/violet-vault/backend/internal/bills"
	"github.com/violet-vault/backend/internal/splits"
	"gorm.io/gorm"
)

// Transaction is an income or expense.
//
// Scheduled expenses are bills. Split parts reference the transaction
// they were split from.
type Transaction struct {
	DefaultModel
	Date        time.Time        `json:"date" gorm:"index"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Type        string           `json:"type" gorm:"index"`
	IsScheduled bool             `json:"isScheduled"`
	Category    string           `json:"category"`
	EnvelopeID  string           `json:"envelopeId"` // An Envelope ID or "unassigned"
	Notes       string           `json:"notes"`
	Account     string           `json:"account"`
	Metadata    *splits.Metadata `json:"metadata,omitempty" gorm:"serializer:json"`

	ParentTransactionID string          `json:"parentTransactionId,omitempty" gorm:"index"`
	IsSplit             bool            `json:"isSplit"`
	SplitIndex          int             `json:"splitIndex"`
	SplitTotal          int             `json:"splitTotal"`
	OriginalAmount      decimal.Decimal `json:"originalAmount" gorm:"type:DECIMAL(20,8)"`
}

// AfterFind enforces UTC for all times.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the date to UTC, defaulting to now, and trims whitespace.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Description = strings.TrimSpace(t.Description)
	t.Notes = strings.TrimSpace(t.Notes)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// Bill returns the view of the transaction used by the bill matcher.
func (t Transaction) Bill() bills.Transaction {
	return bills.Transaction{
		ID:          t.ID,
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount.InexactFloat64(),
		Type:        bills.TransactionType(t.Type),
		IsScheduled: t.IsScheduled,
		Category:    t.Category,
		EnvelopeID:  t.EnvelopeID,
		Notes:       t.Notes,
	}
}

// TransactionFromBill converts a bill or payment for storage.
func TransactionFromBill(b bills.Transaction) Transaction {
	return Transaction{
		DefaultModel: DefaultModel{ID: b.ID},
		Date:         b.Date,
		Description:  b.Description,
		Amount:       decimal.NewFromFloat(b.Amount),
		Type:         string(b.Type),
		IsScheduled:  b.IsScheduled,
		Category:     b.Category,
		EnvelopeID:   b.EnvelopeID,
		Notes:        b.Notes,
	}
}

// Split returns the view of the transaction used by the split balancer.
func (t Transaction) Split() splits.Transaction {
	return splits.Transaction{
		ID:                  t.ID,
		Date:                t.Date,
		Description:         t.Description,
		Amount:              t.Amount.InexactFloat64(),
		Category:            t.Category,
		EnvelopeID:          t.EnvelopeID,
		Account:             t.Account,
		Type:                t.Type,
		Metadata:            t.Metadata,
		ParentTransactionID: t.ParentTransactionID,
		IsSplit:             t.IsSplit,
		SplitIndex:          t.SplitIndex,
		SplitTotal:          t.SplitTotal,
		OriginalAmount:      t.OriginalAmount.InexactFloat64(),
	}
}

// TransactionFromSplit converts a split part for storage.
func TransactionFromSplit(s splits.Transaction) Transaction {
	return Transaction{
		DefaultModel:        DefaultModel{ID: s.ID},
		Date:                s.Date,
		Description:         s.Description,
		Amount:              decimal.NewFromFloat(s.Amount),
		Type:                s.Type,
		Category:            s.Category,
		EnvelopeID:          s.EnvelopeID,
		Account:             s.Account,
		Metadata:            s.Metadata,
		ParentTransactionID: s.ParentTransactionID,
		IsSplit:             s.IsSplit,
		SplitIndex:          s.SplitIndex,
		SplitTotal:          s.SplitTotal,
		OriginalAmount:      decimal.NewFromFloat(s.OriginalAmount),
	}
}
