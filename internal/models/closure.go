package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/misfinanzas/backend/internal/money"
	"github.com/misfinanzas/backend/internal/types"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MonthClosure marks one (user, year, month) as closed. A closure is
// terminal: there is no reopen. The composite unique index is the race
// guard, concurrent closes of the same month fail on insert.
type MonthClosure struct {
	DefaultModel
	UserID uuid.UUID `gorm:"uniqueIndex:closure_user_period"`
	Year   int       `gorm:"uniqueIndex:closure_user_period"`
	Month  int       `gorm:"uniqueIndex:closure_user_period"`
}

// IsMonthClosed reports whether the month containing date is closed for
// this user.
func IsMonthClosed(db *gorm.DB, userID uuid.UUID, date time.Time) (bool, error) {
	month := types.MonthOf(date)

	var count int64
	err := db.Model(&MonthClosure{}).
		Where(&MonthClosure{UserID: userID, Year: month.Year(), Month: int(month.Month())}).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// EnsureMonthOpen returns ErrMonthClosed if the month containing date
// has been closed. Called from the BeforeCreate hooks of every dated
// row so that the check and the insert share one transaction.
func EnsureMonthOpen(db *gorm.DB, userID uuid.UUID, date time.Time) error {
	closed, err := IsMonthClosed(db, userID, date)
	if err != nil {
		return err
	}

	if closed {
		return ErrMonthClosed
	}

	return nil
}

// CloseMonth closes a month and posts one summary bank movement per
// currency that had activity: the month's net income minus the expenses
// that never touched the bank. Movements are dated on the last calendar
// day of the month. Closing an already closed month is an error, not a
// no-op.
func CloseMonth(db *gorm.DB, userID uuid.UUID, month types.Month) (MonthClosure, error) {
	closure := MonthClosure{
		UserID: userID,
		Year:   month.Year(),
		Month:  int(month.Month()),
	}

	// The unique index turns a lost race into ErrMonthAlreadyClosed
	// via the create callback.
	err := db.Create(&closure).Error
	if err != nil {
		return MonthClosure{}, err
	}

	net, err := MonthIncomeNetByCurrency(db, userID, month)
	if err != nil {
		return MonthClosure{}, err
	}

	offBank, err := MonthExpensesOffBankByCurrency(db, userID, month)
	if err != nil {
		return MonthClosure{}, err
	}

	for currency, amount := range offBank {
		net[currency] -= amount
	}

	for _, currency := range money.Currencies {
		amount := net[currency]
		delete(net, currency)

		if amount == 0 {
			continue
		}

		movement := BankMovement{
			UserID:         userID,
			Date:           month.LastDay(),
			Type:           MovementMonthClosure,
			AmountCents:    amount,
			Currency:       currency,
			Note:           fmt.Sprintf("Closure %s", month),
			MonthClosureID: &closure.ID,
		}

		err = db.Create(&movement).Error
		if err != nil {
			return MonthClosure{}, err
		}
	}

	// Whatever is left uses a currency we cannot post movements for.
	for currency := range net {
		log.Warn().
			Str("currency", currency).
			Stringer("user", userID).
			Str("month", month.String()).
			Msg("skipping closure movement for unsupported currency")
	}

	return closure, nil
}

// ClosuresOf lists a user's closures, newest period first.
func ClosuresOf(db *gorm.DB, userID uuid.UUID) ([]MonthClosure, error) {
	var closures []MonthClosure
	err := db.Where(&MonthClosure{UserID: userID}).
		Order("year DESC, month DESC").
		Find(&closures).Error
	return closures, err
}
