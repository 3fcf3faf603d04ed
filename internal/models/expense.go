package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/misfinanzas/backend/internal/money"
	"gorm.io/gorm"
)

// Expense is a single spend. When AffectsBank is set, creating the
// expense also posts a bank movement for the same day; otherwise the
// expense only becomes visible in the balance when its month is closed.
type Expense struct {
	DefaultModel
	UserID      uuid.UUID `gorm:"index:idx_expenses_user_date"`
	Date        time.Time `gorm:"index:idx_expenses_user_date"`
	Category    string    `gorm:"index"`
	Concept     string
	AmountCents int64
	Currency    string
	AffectsBank bool
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	e.Category = strings.TrimSpace(e.Category)
	e.Concept = strings.TrimSpace(e.Concept)

	if e.Category == "" {
		return ErrCategoryRequired
	}

	if e.Concept == "" {
		return ErrConceptRequired
	}

	if !money.Valid(e.Currency) {
		return money.ErrCurrencyNotSupported
	}

	if e.AmountCents <= 0 {
		return money.ErrAmountNotPositive
	}

	return EnsureMonthOpen(tx, e.UserID, e.Date)
}

// AfterCreate posts the bank movement for expenses that touch the bank.
// It runs in the same transaction as the insert, so the expense and its
// movement always commit or roll back together.
func (e *Expense) AfterCreate(tx *gorm.DB) error {
	if !e.AffectsBank {
		return nil
	}

	movement := BankMovement{
		UserID:           e.UserID,
		Date:             e.Date,
		Type:             MovementExpense,
		AmountCents:      -e.AmountCents,
		Currency:         e.Currency,
		Note:             fmt.Sprintf("%s: %s", e.Category, e.Concept),
		RelatedExpenseID: &e.ID,
	}

	return tx.Create(&movement).Error
}
