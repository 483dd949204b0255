package bills

import (
	"time"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// UnassignedEnvelopeID is the envelope reference that pays from unassigned cash.
const UnassignedEnvelopeID = "unassigned"

// DefaultCategory is used for bills and payments created without a category.
const DefaultCategory = "Bills & Utilities"

// Transaction is a plain transaction record as supplied by the store.
//
// A scheduled expense is a recurring bill, a non-scheduled expense is an
// actual payment. Expense amounts are negative.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	IsScheduled bool            `json:"isScheduled"`
	Category    string          `json:"category"`
	EnvelopeID  string          `json:"envelopeId"`
	Notes       string          `json:"notes"`
}

// IsBill reports whether the transaction is a scheduled expense.
func (t Transaction) IsBill() bool {
	return t.IsScheduled && t.Type == TypeExpense
}

// IsPayment reports whether the transaction is an actual expense.
func (t Transaction) IsPayment() bool {
	return !t.IsScheduled && t.Type == TypeExpense
}

// MatchKind tells how a bill was found to be paid.
type MatchKind string

const (
	MatchNone      MatchKind = ""
	MatchTagged    MatchKind = "tagged"
	MatchHeuristic MatchKind = "heuristic"
)

// Bill is a scheduled transaction with its payment status.
//
// The payment fields are never stored. They are derived by Reconcile
// every time bills are listed.
type Bill struct {
	Transaction
	IsPaid               bool       `json:"isPaid"`
	PaidDate             *time.Time `json:"paidDate,omitempty"`
	PaidAmount           float64    `json:"paidAmount,omitempty"`
	PaymentTransactionID string     `json:"paymentTransactionId,omitempty"`
	MatchKind            MatchKind  `json:"matchKind,omitempty"`
}

// Envelope is the funding source view needed to pay a bill.
type Envelope struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	CurrentBalance float64 `json:"currentBalance"`
}
