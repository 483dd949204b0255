package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget holds the money that has not been assigned to any envelope.
//
// There is exactly one budget. It is created on first use.
type Budget struct {
	DefaultModel
	Name           string          `json:"name"`
	UnassignedCash decimal.Decimal `json:"unassignedCash" gorm:"type:DECIMAL(20,8)"`
}

// CurrentBudget returns the budget, creating it if it does not exist yet.
func CurrentBudget(db *gorm.DB) (Budget, error) {
	var budget Budget
	err := db.Order("created_at ASC").FirstOrCreate(&budget).Error
	if err != nil {
		return Budget{}, err
	}
	return budget, nil
}
