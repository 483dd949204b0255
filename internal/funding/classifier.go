package funding

import "golang.org/x/exp/slices"

// EnvelopeType is the funding behaviour of an envelope.
type EnvelopeType string

const (
	TypeBill         EnvelopeType = "bill"
	TypeVariable     EnvelopeType = "variable"
	TypeSavings      EnvelopeType = "savings"
	TypeSinkingFund  EnvelopeType = "sinking_fund"
	TypeSupplemental EnvelopeType = "supplemental"
)

// BiweeklyMultiplier converts a monthly target into a pay period target:
// 26 pay periods a year spread over 12 months.
const BiweeklyMultiplier = 26.0 / 12.0

// BillCategories are the categories that mark an envelope as bill-like
// even when its type says otherwise.
var BillCategories = []string{
	"Bills & Utilities",
	"Housing",
	"Rent",
	"Mortgage",
	"Utilities",
	"Insurance",
	"Phone",
	"Internet",
	"Subscriptions",
	"Debt",
	"Loans",
	"Car Payment",
}

// Envelope is the planner's read-only view of an envelope.
type Envelope struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	EnvelopeType       EnvelopeType `json:"envelopeType"`
	Category           string       `json:"category"`
	AutoAllocate       bool         `json:"autoAllocate"`
	CurrentBalance     float64      `json:"currentBalance"`
	BiweeklyAllocation float64      `json:"biweeklyAllocation"`
	MonthlyBudget      float64      `json:"monthlyBudget"`
}

// IsBillEnvelope reports whether the envelope takes part in the bill pass.
func IsBillEnvelope(e Envelope) bool {
	return e.AutoAllocate && (e.EnvelopeType == TypeBill || slices.Contains(BillCategories, e.Category))
}

// IsVariableAutoAllocate reports whether the envelope takes part in the
// variable expense pass.
func IsVariableAutoAllocate(e Envelope) bool {
	return e.AutoAllocate && e.EnvelopeType == TypeVariable && e.MonthlyBudget > 0
}

// BillEnvelopes returns the envelopes funded in the bill pass, in input order.
func BillEnvelopes(envelopes []Envelope) []Envelope {
	return filter(envelopes, IsBillEnvelope)
}

// VariableEnvelopes returns the envelopes funded in the variable pass, in input order.
func VariableEnvelopes(envelopes []Envelope) []Envelope {
	return filter(envelopes, IsVariableAutoAllocate)
}

func filter(envelopes []Envelope, keep func(Envelope) bool) []Envelope {
	out := make([]Envelope, 0, len(envelopes))
	for _, e := range envelopes {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
