package funding

import (
	"math"
	"strings"
	"unicode/utf8"
)

// MaxPaycheckAmount is the largest paycheck accepted.
const MaxPaycheckAmount = 1_000_000

// Paycheck is the user input for processing a paycheck.
type Paycheck struct {
	Amount    float64 `json:"amount"`
	PayerName string  `json:"payerName"`
	Mode      string  `json:"mode"`
}

// ValidatePaycheck checks a paycheck before it is planned or processed.
// The returned map is keyed by field name and empty when the paycheck is valid.
func ValidatePaycheck(p Paycheck) map[string]string {
	errs := make(map[string]string)

	switch {
	case p.Amount == 0:
		errs["amount"] = "Paycheck amount is required"
	case p.Amount < 0 || math.IsNaN(p.Amount):
		errs["amount"] = "Paycheck amount must be a positive number"
	case p.Amount > MaxPaycheckAmount:
		errs["amount"] = "Paycheck amount cannot exceed $1,000,000"
	}

	name := strings.TrimSpace(p.PayerName)
	if name == "" {
		errs["payerName"] = "Payer name is required"
	} else if utf8.RuneCountInString(name) > 100 {
		errs["payerName"] = "Payer name must be less than 100 characters"
	}

	if _, err := ParseMode(p.Mode); err != nil {
		errs["mode"] = "Invalid allocation mode"
	}

	return errs
}
