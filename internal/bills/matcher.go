package bills

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/violet-vault/backend/internal/money"
)

const tagPrefix = "Scheduled Bill ID: "

// PaymentTag is the marker written into the notes of every payment the
// service creates for a bill.
func PaymentTag(billID string) string {
	return tagPrefix + billID
}

func paymentIDPrefix(billID string) string {
	return billID + "_payment_"
}

// PaymentID returns a new ID for a payment the service records for a bill.
func PaymentID(billID string) string {
	return paymentIDPrefix(billID) + uuid.NewString()
}

// IsRecordedPayment reports whether t was recorded by Service.MarkPaid for
// the bill and has therefore been debited from its funding source.
func IsRecordedPayment(billID string, t Transaction) bool {
	return !t.IsScheduled && t.EnvelopeID != "" && strings.HasPrefix(t.ID, paymentIDPrefix(billID))
}

// Matcher decides which payment, if any, satisfies a scheduled bill.
type Matcher struct {
	// MatchWindow is the largest distance between due date and payment date
	// for a heuristic match.
	MatchWindow time.Duration

	// LookbackMonths bounds the payments considered for heuristic matches.
	LookbackMonths int
}

// DefaultMatcher matches payments up to 7 days from the due date and
// looks back 6 months.
var DefaultMatcher = Matcher{
	MatchWindow:    7 * 24 * time.Hour,
	LookbackMonths: 6,
}

// Reconcile reconciles bills with DefaultMatcher.
func Reconcile(scheduled, actual []Transaction, now time.Time) []Bill {
	return DefaultMatcher.Reconcile(scheduled, actual, now)
}

// Reconcile returns one Bill per scheduled expense, in input order.
//
// A payment whose notes carry the bill's tag always wins. Otherwise the
// first recent payment whose description contains the bill description,
// is dated within the match window and has the same amount to the cent is
// used. The assignment is greedy: a payment is not reserved once it has
// matched a bill.
//
// Reconcile never fails. A bill without a match is unpaid.
func (m Matcher) Reconcile(scheduled, actual []Transaction, now time.Time) []Bill {
	payments := make([]Transaction, 0, len(actual))
	for _, t := range actual {
		if t.IsPayment() {
			payments = append(payments, t)
		}
	}

	cutoff := now.AddDate(0, -m.LookbackMonths, 0)
	recent := make([]Transaction, 0, len(payments))
	for _, p := range payments {
		if !p.Date.Before(cutoff) {
			recent = append(recent, p)
		}
	}

	bills := make([]Bill, 0, len(scheduled))
	for _, s := range scheduled {
		if !s.IsBill() {
			continue
		}

		bill := Bill{Transaction: s}

		if p, ok := findTagged(s.ID, payments); ok {
			bill.markPaid(p, MatchTagged)
		} else if p, ok := m.findHeuristic(s, recent); ok {
			bill.markPaid(p, MatchHeuristic)
		}

		bills = append(bills, bill)
	}

	return bills
}

func (b *Bill) markPaid(p Transaction, kind MatchKind) {
	date := p.Date
	b.IsPaid = true
	b.PaidDate = &date
	b.PaidAmount = math.Abs(p.Amount)
	b.PaymentTransactionID = p.ID
	b.MatchKind = kind
}

func findTagged(billID string, payments []Transaction) (Transaction, bool) {
	tag := PaymentTag(billID)
	for _, p := range payments {
		if strings.Contains(p.Notes, tag) {
			return p, true
		}
	}
	return Transaction{}, false
}

func (m Matcher) findHeuristic(bill Transaction, payments []Transaction) (Transaction, bool) {
	for _, p := range payments {
		if m.Matches(bill, p) {
			return p, true
		}
	}
	return Transaction{}, false
}

// Matches reports whether payment satisfies bill by description, date and amount.
func (m Matcher) Matches(bill, payment Transaction) bool {
	if !strings.Contains(payment.Description, bill.Description) {
		return false
	}

	distance := payment.Date.Sub(bill.Date)
	if distance < 0 {
		distance = -distance
	}
	if distance > m.MatchWindow {
		return false
	}

	return money.Equal(math.Abs(payment.Amount), math.Abs(bill.Amount))
}

// String is used in logs.
func (m Matcher) String() string {
	return fmt.Sprintf("window=%s lookback=%dmo", m.MatchWindow, m.LookbackMonths)
}
