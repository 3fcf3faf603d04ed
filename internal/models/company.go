package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/misfinanzas/backend/internal/money"
	"gorm.io/gorm"
)

// Company is an employer a user logs work entries against.
//
// The currency is fixed once work entries exist for the company; the
// aggregation engine groups net income by it without any conversion.
type Company struct {
	DefaultModel
	UserID               uuid.UUID `gorm:"uniqueIndex:company_name_user"`
	Name                 string    `gorm:"uniqueIndex:company_name_user"`
	Currency             string
	DayRateCents         int64
	NightRateCents       int64
	WithholdingPercent   float64
	OtherDeductionsCents int64
	ProratedBonus        bool
}

func (c *Company) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Name == "" {
		return ErrNameRequired
	}

	if !money.Valid(c.Currency) {
		return money.ErrCurrencyNotSupported
	}

	if c.WithholdingPercent < 0 || c.WithholdingPercent > 100 {
		return ErrWithholdingInvalid
	}

	return nil
}

// CompanyOf fetches a company scoped to its owner. A company that exists
// but belongs to someone else is reported as not found.
func CompanyOf(db *gorm.DB, userID, companyID uuid.UUID) (Company, error) {
	var company Company
	err := db.Where(&Company{UserID: userID}).First(&company, "id = ?", companyID).Error
	return company, err
}
