package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movement type tags. They record what produced a movement; together
// with the provenance references they are the only link between the
// bank ledger and the rest of the data.
const (
	MovementExpense      = "expense-posting"
	MovementDebtPayment  = "debt-payment-posting"
	MovementMonthClosure = "month-closure-posting"
)

// BankMovement is one line in the bank ledger. Negative amounts are
// outflows. Movements are append-only: business logic only ever creates
// them, as a side effect of expenses, debt payments and month closures.
type BankMovement struct {
	DefaultModel
	UserID               uuid.UUID `gorm:"index:idx_bank_movements_user_date;index:idx_bank_movements_user_currency"`
	Date                 time.Time `gorm:"index:idx_bank_movements_user_date"`
	Type                 string
	AmountCents          int64
	Currency             string `gorm:"index:idx_bank_movements_user_currency"`
	Note                 string
	MonthClosureID       *uuid.UUID
	RelatedExpenseID     *uuid.UUID
	RelatedDebtPaymentID *uuid.UUID
}

// BalanceByCurrency sums all movements of a user per currency. It is a
// full recompute on every call, which is fine at personal-ledger scale.
func BalanceByCurrency(db *gorm.DB, userID uuid.UUID) (map[string]int64, error) {
	var rows []struct {
		Currency   string
		TotalCents int64
	}

	err := db.Model(&BankMovement{}).
		Select("currency, SUM(amount_cents) as total_cents").
		Where("user_id = ?", userID).
		Group("currency").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	balance := make(map[string]int64, len(rows))
	for _, row := range rows {
		balance[row.Currency] = row.TotalCents
	}

	return balance, nil
}
