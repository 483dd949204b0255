package bills

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/violet-vault/backend/internal/money"
)

// Store persists bills, payments and funding sources.
//
// Implementations must return ErrBillNotFound and ErrEnvelopeNotFound
// (possibly wrapped) for missing records.
type Store interface {
	// Bill returns the scheduled expense with the given ID.
	Bill(ctx context.Context, id string) (Transaction, error)

	// Expenses returns all scheduled and all actual expenses.
	Expenses(ctx context.Context) (scheduled, actual []Transaction, err error)

	Envelope(ctx context.Context, id string) (Envelope, error)
	UnassignedCash(ctx context.Context) (float64, error)

	CreateBill(ctx context.Context, bill Transaction) error
	UpdateBill(ctx context.Context, bill Transaction) error

	// DeleteBill removes the bill and every payment tagged with its ID
	// in one atomic operation. Payments for which IsRecordedPayment holds
	// are credited back to their funding source. It returns the number of
	// removed payments.
	DeleteBill(ctx context.Context, id string) (int, error)

	// RecordPayment stores the payment and debits its envelope, or
	// unassigned cash for UnassignedEnvelopeID, in one atomic operation.
	// It fails with an *InsufficientFundsError and writes nothing when the
	// source holds less than the payment amount at the time of the write.
	RecordPayment(ctx context.Context, payment Transaction) error
}

// ChangeKind names a bill mutation.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
	ChangePaid    ChangeKind = "paid"
)

// Change describes a completed mutation and the views it makes stale.
type Change struct {
	Kind        ChangeKind `json:"kind"`
	BillID      string     `json:"billId"`
	Invalidates []string   `json:"invalidates"`
}

// Observer receives changes after they have been committed.
type Observer func(Change)

// PaymentOptions override the defaults of MarkPaid.
type PaymentOptions struct {
	EnvelopeID string
	Amount     *float64
	Date       *time.Time
}

// BillInput creates a bill.
type BillInput struct {
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	EnvelopeID  string    `json:"envelopeId"`
	Notes       string    `json:"notes"`
}

// BillUpdate changes the fields that are not nil.
type BillUpdate struct {
	Description *string    `json:"description"`
	Amount      *float64   `json:"amount"`
	Date        *time.Time `json:"date"`
	Category    *string    `json:"category"`
	EnvelopeID  *string    `json:"envelopeId"`
	Notes       *string    `json:"notes"`
}

// Service orchestrates bill mutations on a Store.
//
// Calls for the same bill are serialized. Calls for different bills run
// concurrently and rely on the atomicity of the Store.
type Service struct {
	store   Store
	matcher Matcher
	now     func() time.Time
	locks   keyedMutex

	mu        sync.RWMutex
	observers []Observer
}

// NewService creates a service with DefaultMatcher and the wall clock.
func NewService(store Store) *Service {
	return &Service{
		store:   store,
		matcher: DefaultMatcher,
		now:     time.Now,
		locks:   keyedMutex{locks: make(map[string]*refMutex)},
	}
}

// WithMatcher sets the matcher used for listing.
func (s *Service) WithMatcher(m Matcher) *Service {
	s.matcher = m
	return s
}

// WithClock sets the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Subscribe registers an observer for all future changes.
func (s *Service) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Service) notify(kind ChangeKind, billID string, invalidates ...string) {
	change := Change{
		Kind:        kind,
		BillID:      billID,
		Invalidates: append([]string{"bills", "dashboard"}, invalidates...),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o(change)
	}
}

// Bills returns all reconciled bills in storage order.
func (s *Service) Bills(ctx context.Context) ([]Bill, error) {
	scheduled, actual, err := s.store.Expenses(ctx)
	if err != nil {
		return nil, err
	}
	return s.matcher.Reconcile(scheduled, actual, s.now()), nil
}

// List returns the reconciled bills selected by the query.
func (s *Service) List(ctx context.Context, q Query) ([]Bill, error) {
	bills, err := s.Bills(ctx)
	if err != nil {
		return nil, err
	}
	return List(bills, q, s.now()), nil
}

// Summary aggregates all reconciled bills.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	bills, err := s.Bills(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(bills, s.now()), nil
}

// Get returns one reconciled bill.
func (s *Service) Get(ctx context.Context, id string) (Bill, error) {
	if _, err := s.store.Bill(ctx, id); err != nil {
		return Bill{}, err
	}

	bills, err := s.Bills(ctx)
	if err != nil {
		return Bill{}, err
	}

	for _, b := range bills {
		if b.ID == id {
			return b, nil
		}
	}
	return Bill{}, ErrBillNotFound
}

// Create stores a new scheduled expense.
func (s *Service) Create(ctx context.Context, in BillInput) (Transaction, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return Transaction{}, ErrDescriptionRequired
	}

	if !money.Valid(in.Amount) || in.Amount == 0 {
		return Transaction{}, ErrNonPositiveAmount
	}

	category := in.Category
	if category == "" {
		category = DefaultCategory
	}

	date := in.Date
	if date.IsZero() {
		date = startOfDay(s.now())
	}

	bill := Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		Amount:      -math.Abs(in.Amount),
		Type:        TypeExpense,
		IsScheduled: true,
		Category:    category,
		EnvelopeID:  in.EnvelopeID,
		Notes:       in.Notes,
	}

	if err := s.store.CreateBill(ctx, bill); err != nil {
		return Transaction{}, err
	}

	s.notify(ChangeCreated, bill.ID)
	return bill, nil
}

// Update changes a bill. Amounts are stored as expenses regardless of sign.
func (s *Service) Update(ctx context.Context, id string, u BillUpdate) (Transaction, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	bill, err := s.store.Bill(ctx, id)
	if err != nil {
		return Transaction{}, err
	}

	if u.Description != nil {
		d := strings.TrimSpace(*u.Description)
		if d == "" {
			return Transaction{}, ErrDescriptionRequired
		}
		bill.Description = d
	}

	if u.Amount != nil {
		if !money.Valid(*u.Amount) || *u.Amount == 0 {
			return Transaction{}, ErrNonPositiveAmount
		}
		bill.Amount = -math.Abs(*u.Amount)
	}

	if u.Date != nil {
		bill.Date = *u.Date
	}

	if u.Category != nil {
		bill.Category = *u.Category
	}

	if u.EnvelopeID != nil {
		bill.EnvelopeID = *u.EnvelopeID
	}

	if u.Notes != nil {
		bill.Notes = *u.Notes
	}

	if err := s.store.UpdateBill(ctx, bill); err != nil {
		return Transaction{}, err
	}

	s.notify(ChangeUpdated, id)
	return bill, nil
}

// Delete removes a bill and the payments tagged with its ID.
// Untagged payments that matched the bill heuristically are kept.
func (s *Service) Delete(ctx context.Context, id string) (int, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	if _, err := s.store.Bill(ctx, id); err != nil {
		return 0, err
	}

	removed, err := s.store.DeleteBill(ctx, id)
	if err != nil {
		return 0, err
	}

	s.notify(ChangeDeleted, id, "transactions")
	return removed, nil
}

func sourceLockKey(envelopeID string) string {
	return "source:" + envelopeID
}

// MarkPaid records a payment for the bill and debits its funding source.
//
// The envelope defaults to the bill's envelope, the amount to the bill
// amount and the date to today. Nothing is written when a check fails.
func (s *Service) MarkPaid(ctx context.Context, id string, opts PaymentOptions) (Transaction, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	bill, err := s.store.Bill(ctx, id)
	if err != nil {
		return Transaction{}, err
	}

	envelopeID := strings.TrimSpace(opts.EnvelopeID)
	if envelopeID == "" {
		envelopeID = strings.TrimSpace(bill.EnvelopeID)
	}
	if envelopeID == "" {
		return Transaction{}, ErrEmptyEnvelopeReference
	}

	// Payments for different bills can draw on the same source
	unlockSource := s.locks.lock(sourceLockKey(envelopeID))
	defer unlockSource()

	amount := math.Abs(bill.Amount)
	if opts.Amount != nil {
		amount = *opts.Amount
	}
	if !money.Valid(amount) || amount <= 0 {
		return Transaction{}, ErrNonPositiveAmount
	}

	var (
		available float64
		source    string
	)
	if envelopeID == UnassignedEnvelopeID {
		source = "unassigned cash"
		if available, err = s.store.UnassignedCash(ctx); err != nil {
			return Transaction{}, err
		}
	} else {
		envelope, err := s.store.Envelope(ctx, envelopeID)
		if err != nil {
			return Transaction{}, err
		}
		source = fmt.Sprintf("envelope '%s'", envelope.Name)
		available = envelope.CurrentBalance
	}

	if available < amount && !money.Equal(available, amount) {
		return Transaction{}, &InsufficientFundsError{
			Source:    source,
			Available: available,
			Required:  amount,
		}
	}

	date := startOfDay(s.now())
	if opts.Date != nil {
		date = *opts.Date
	}

	category := bill.Category
	if category == "" {
		category = DefaultCategory
	}

	description := bill.Description
	if description == "" {
		description = "Bill Payment"
	}

	payment := Transaction{
		ID:          PaymentID(id),
		Date:        date,
		Description: description,
		Amount:      -amount,
		Type:        TypeExpense,
		Category:    category,
		EnvelopeID:  envelopeID,
		Notes:       PaymentTag(id),
	}

	if err := s.store.RecordPayment(ctx, payment); err != nil {
		return Transaction{}, err
	}

	s.notify(ChangePaid, id, "transactions", "envelopes")
	return payment, nil
}
