package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/misfinanzas/backend/internal/money"
	"gorm.io/gorm"
)

// Debt is money owed to a creditor. It has no state of its own: how much
// is left is always derived from the payment log.
type Debt struct {
	DefaultModel
	UserID     uuid.UUID `gorm:"index"`
	Creditor   string
	TotalCents int64
	Currency   string
}

func (d *Debt) BeforeCreate(tx *gorm.DB) error {
	_ = d.DefaultModel.BeforeCreate(tx)

	d.Creditor = strings.TrimSpace(d.Creditor)
	if d.Creditor == "" {
		return ErrCreditorRequired
	}

	if !money.Valid(d.Currency) {
		return money.ErrCurrencyNotSupported
	}

	if d.TotalCents <= 0 {
		return money.ErrAmountNotPositive
	}

	return nil
}

// Remaining returns the outstanding amount. A debt counts as paid once
// the remaining amount reaches zero or below; overshooting payments do
// not error.
func (d Debt) Remaining(db *gorm.DB) (remaining int64, paid bool, err error) {
	var paidCents struct {
		Total *int64
	}

	err = db.Model(&DebtPayment{}).
		Select("SUM(amount_cents) as total").
		Where(&DebtPayment{UserID: d.UserID, DebtID: d.ID}).
		Scan(&paidCents).Error
	if err != nil {
		return 0, false, err
	}

	remaining = d.TotalCents
	if paidCents.Total != nil {
		remaining -= *paidCents.Total
	}

	return remaining, remaining <= 0, nil
}

// DebtOf fetches a debt scoped to its owner.
func DebtOf(db *gorm.DB, userID, debtID uuid.UUID) (Debt, error) {
	var debt Debt
	err := db.Where(&Debt{UserID: userID}).First(&debt, "id = ?", debtID).Error
	return debt, err
}

// DebtPayment is one payment towards a debt. Payments always post a
// bank movement.
type DebtPayment struct {
	DefaultModel
	UserID      uuid.UUID `gorm:"index"`
	DebtID      uuid.UUID `gorm:"index:idx_debt_payments_debt_date"`
	Debt        Debt      `json:"-"`
	Date        time.Time `gorm:"index:idx_debt_payments_debt_date"`
	AmountCents int64
}

func (p *DebtPayment) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	if p.AmountCents <= 0 {
		return money.ErrAmountNotPositive
	}

	_, err := DebtOf(tx, p.UserID, p.DebtID)
	if err != nil {
		return err
	}

	return EnsureMonthOpen(tx, p.UserID, p.Date)
}

// AfterCreate posts the outgoing bank movement for the payment within
// the same transaction.
func (p *DebtPayment) AfterCreate(tx *gorm.DB) error {
	debt, err := DebtOf(tx, p.UserID, p.DebtID)
	if err != nil {
		return err
	}

	movement := BankMovement{
		UserID:               p.UserID,
		Date:                 p.Date,
		Type:                 MovementDebtPayment,
		AmountCents:          -p.AmountCents,
		Currency:             debt.Currency,
		Note:                 fmt.Sprintf("Debt payment to %s", debt.Creditor),
		RelatedDebtPaymentID: &p.ID,
	}

	return tx.Create(&movement).Error
}
