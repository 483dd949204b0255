package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/violet-vault/backend/internal/bills"
	"github.com/violet-vault/backend/internal/funding"
	"github.com/violet-vault/backend/internal/money"
	"github.com/violet-vault/backend/internal/splits"
	"gorm.io/gorm"
)

// Store implements bills.Store on DB.
//
// It always uses the DB that is current at call time, so that tests can
// reconnect between runs.
type Store struct{}

var _ bills.Store = Store{}

func (Store) db(ctx context.Context) *gorm.DB {
	return DB.WithContext(ctx)
}

// notFound translates ErrResourceNotFound into the given sentinel.
func notFound(err error, sentinel error, id string) error {
	if errors.Is(err, ErrResourceNotFound) {
		return fmt.Errorf("%w: %s", sentinel, id)
	}
	return err
}

func (s Store) Bill(ctx context.Context, id string) (bills.Transaction, error) {
	var t Transaction
	err := s.db(ctx).Where("is_scheduled = ?", true).First(&t, "id = ?", id).Error
	if err != nil {
		return bills.Transaction{}, notFound(err, bills.ErrBillNotFound, id)
	}

	return t.Bill(), nil
}

func (s Store) Expenses(ctx context.Context) (scheduled, actual []bills.Transaction, err error) {
	var transactions []Transaction
	err = s.db(ctx).
		Where("type = ?", string(bills.TypeExpense)).
		Order("created_at ASC, id ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, nil, err
	}

	for _, t := range transactions {
		switch {
		case t.IsScheduled:
			scheduled = append(scheduled, t.Bill())
		case t.IsSplit && t.ParentTransactionID == "":
			// The parts of a split transaction carry its money
			continue
		default:
			actual = append(actual, t.Bill())
		}
	}

	return scheduled, actual, nil
}

func (s Store) Envelope(ctx context.Context, id string) (bills.Envelope, error) {
	var e Envelope
	err := s.db(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return bills.Envelope{}, notFound(err, bills.ErrEnvelopeNotFound, id)
	}

	return e.Source(), nil
}

func (s Store) UnassignedCash(ctx context.Context) (float64, error) {
	budget, err := CurrentBudget(s.db(ctx))
	if err != nil {
		return 0, err
	}

	return budget.UnassignedCash.InexactFloat64(), nil
}

func (s Store) CreateBill(ctx context.Context, bill bills.Transaction) error {
	t := TransactionFromBill(bill)
	return s.db(ctx).Create(&t).Error
}

func (s Store) UpdateBill(ctx context.Context, bill bills.Transaction) error {
	var t Transaction
	err := s.db(ctx).Where("is_scheduled = ?", true).First(&t, "id = ?", bill.ID).Error
	if err != nil {
		return notFound(err, bills.ErrBillNotFound, bill.ID)
	}

	update := TransactionFromBill(bill)

	// Select all fields so that zero values like an empty category are written
	return s.db(ctx).Model(&t).
		Select("Date", "Description", "Amount", "Category", "EnvelopeID", "Notes").
		Updates(&update).Error
}

func (s Store) DeleteBill(ctx context.Context, id string) (int, error) {
	tx := s.db(ctx).Begin()

	var payments []Transaction
	err := tx.
		Where("is_scheduled = ? AND instr(notes, ?) > 0", false, bills.PaymentTag(id)).
		Find(&payments).Error
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	for _, p := range payments {
		if !bills.IsRecordedPayment(id, p.Bill()) {
			continue
		}

		err = adjustBalance(tx, p.EnvelopeID, p.Amount.Neg())
		if err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	result := tx.
		Where("is_scheduled = ? AND instr(notes, ?) > 0", false, bills.PaymentTag(id)).
		Delete(&Transaction{})
	if result.Error != nil {
		tx.Rollback()
		return 0, result.Error
	}

	bill := tx.Where("is_scheduled = ?", true).Delete(&Transaction{DefaultModel: DefaultModel{ID: id}})
	if bill.Error != nil {
		tx.Rollback()
		return 0, bill.Error
	}

	if bill.RowsAffected == 0 {
		tx.Rollback()
		return 0, fmt.Errorf("%w: %s", bills.ErrBillNotFound, id)
	}

	err = tx.Commit().Error
	if err != nil {
		return 0, err
	}

	return int(result.RowsAffected), nil
}

func (s Store) RecordPayment(ctx context.Context, payment bills.Transaction) error {
	t := TransactionFromBill(payment)

	tx := s.db(ctx).Begin()
	err := checkFunds(tx, payment.EnvelopeID, t.Amount.Neg())
	if err != nil {
		tx.Rollback()
		return err
	}

	err = adjustBalance(tx, payment.EnvelopeID, t.Amount)
	if err != nil {
		tx.Rollback()
		return err
	}

	err = tx.Create(&t).Error
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// checkFunds fails with a *bills.InsufficientFundsError when the envelope,
// or unassigned cash for bills.UnassignedEnvelopeID, holds less than amount.
func checkFunds(tx *gorm.DB, envelopeID string, amount decimal.Decimal) error {
	var (
		available decimal.Decimal
		source    string
	)

	if envelopeID == bills.UnassignedEnvelopeID {
		budget, err := CurrentBudget(tx)
		if err != nil {
			return err
		}
		available = budget.UnassignedCash
		source = "unassigned cash"
	} else {
		var envelope Envelope
		err := tx.First(&envelope, "id = ?", envelopeID).Error
		if err != nil {
			return notFound(err, bills.ErrEnvelopeNotFound, envelopeID)
		}
		available = envelope.CurrentBalance
		source = fmt.Sprintf("envelope '%s'", envelope.Name)
	}

	a, required := available.InexactFloat64(), amount.InexactFloat64()
	if a < required && !money.Equal(a, required) {
		return &bills.InsufficientFundsError{Source: source, Available: a, Required: required}
	}

	return nil
}

// adjustBalance adds the amount to the balance of an envelope, or to
// unassigned cash for bills.UnassignedEnvelopeID. Payments are negative.
func adjustBalance(tx *gorm.DB, envelopeID string, amount decimal.Decimal) error {
	if envelopeID == bills.UnassignedEnvelopeID {
		budget, err := CurrentBudget(tx)
		if err != nil {
			return err
		}

		return tx.Model(&budget).Update("UnassignedCash", budget.UnassignedCash.Add(amount)).Error
	}

	var envelope Envelope
	err := tx.First(&envelope, "id = ?", envelopeID).Error
	if err != nil {
		return notFound(err, bills.ErrEnvelopeNotFound, envelopeID)
	}

	return tx.Model(&envelope).Update("CurrentBalance", envelope.CurrentBalance.Add(amount)).Error
}

// Envelopes returns all envelopes in the order they were created.
func (s Store) Envelopes(ctx context.Context) ([]Envelope, error) {
	var envelopes []Envelope
	err := s.db(ctx).Order("created_at ASC, id ASC").Find(&envelopes).Error
	if err != nil {
		return nil, err
	}

	return envelopes, nil
}

// Transaction returns any transaction by ID.
func (s Store) Transaction(ctx context.Context, id string) (Transaction, error) {
	var t Transaction
	err := s.db(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		return Transaction{}, err
	}

	return t, nil
}

// ProcessPaycheck stores the income transaction for a paycheck and credits
// the envelopes and unassigned cash as the plan says, in one database
// transaction.
func (s Store) ProcessPaycheck(ctx context.Context, income Transaction, plan *funding.Plan) (Transaction, error) {
	tx := s.db(ctx).Begin()

	for envelopeID, amount := range plan.Allocations {
		err := adjustBalance(tx, envelopeID, decimal.NewFromFloat(amount))
		if err != nil {
			tx.Rollback()
			return Transaction{}, err
		}
	}

	if plan.LeftoverAmount > 0 {
		err := adjustBalance(tx, bills.UnassignedEnvelopeID, decimal.NewFromFloat(plan.LeftoverAmount))
		if err != nil {
			tx.Rollback()
			return Transaction{}, err
		}
	}

	err := tx.Create(&income).Error
	if err != nil {
		tx.Rollback()
		return Transaction{}, err
	}

	err = tx.Commit().Error
	if err != nil {
		return Transaction{}, err
	}

	return income, nil
}

// SplitTransaction marks the parent as split and stores its parts, in one
// database transaction.
func (s Store) SplitTransaction(ctx context.Context, parentID string, parts []splits.Transaction) ([]Transaction, error) {
	tx := s.db(ctx).Begin()

	var parent Transaction
	err := tx.First(&parent, "id = ?", parentID).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if parent.IsSplit {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %s", ErrAlreadySplit, parentID)
	}

	err = tx.Model(&parent).Updates(map[string]any{"is_split": true, "split_total": len(parts)}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	created := make([]Transaction, 0, len(parts))
	for _, part := range parts {
		t := TransactionFromSplit(part)
		err = tx.Create(&t).Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		created = append(created, t)
	}

	err = tx.Commit().Error
	if err != nil {
		return nil, err
	}

	return created, nil
}
