package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/violet-vault/backend/internal/bills"
	"github.com/violet-vault/backend/internal/funding"
	"github.com/violet-vault/backend/internal/splits"
	"gorm.io/gorm"
)

// Envelope is a spending category with its own balance.
type Envelope struct {
	DefaultModel
	Name               string          `json:"name"`
	EnvelopeType       string          `json:"envelopeType"`
	Category           string          `json:"category"`
	AutoAllocate       bool            `json:"autoAllocate"`
	CurrentBalance     decimal.Decimal `json:"currentBalance" gorm:"type:DECIMAL(20,8)"`
	BiweeklyAllocation decimal.Decimal `json:"biweeklyAllocation" gorm:"type:DECIMAL(20,8)"`
	MonthlyBudget      decimal.Decimal `json:"monthlyBudget" gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave trims whitespace from string fields.
func (e *Envelope) BeforeSave(_ *gorm.DB) (err error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Category = strings.TrimSpace(e.Category)
	return nil
}

// Funding returns the view of the envelope used by the paycheck planner.
func (e Envelope) Funding() funding.Envelope {
	return funding.Envelope{
		ID:                 e.ID,
		Name:               e.Name,
		EnvelopeType:       funding.EnvelopeType(e.EnvelopeType),
		Category:           e.Category,
		AutoAllocate:       e.AutoAllocate,
		CurrentBalance:     e.CurrentBalance.InexactFloat64(),
		BiweeklyAllocation: e.BiweeklyAllocation.InexactFloat64(),
		MonthlyBudget:      e.MonthlyBudget.InexactFloat64(),
	}
}

// Source returns the view of the envelope used to pay bills.
func (e Envelope) Source() bills.Envelope {
	return bills.Envelope{
		ID:             e.ID,
		Name:           e.Name,
		CurrentBalance: e.CurrentBalance.InexactFloat64(),
	}
}

// Target returns the view of the envelope used by category lookups for splits.
func (e Envelope) Target() splits.Envelope {
	return splits.Envelope{
		ID:       e.ID,
		Name:     e.Name,
		Category: e.Category,
	}
}
