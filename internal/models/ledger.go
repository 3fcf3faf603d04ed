package models

import (
	"github.com/google/uuid"
	"github.com/misfinanzas/backend/internal/money"
	"github.com/misfinanzas/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompanyIncome is the per-company slice of a monthly income breakdown.
// All derived amounts are computed from stored gross pay, never from
// hours, so they stay stable even if a company's rates change later.
type CompanyIncome struct {
	CompanyID            uuid.UUID `json:"companyId"`
	CompanyName          string    `json:"companyName"`
	Currency             string    `json:"currency"`
	GrossCents           int64     `json:"grossCents"`
	WithholdingCents     int64     `json:"withholdingCents"`
	OtherDeductionsCents int64     `json:"otherDeductionsCents"`
	EstimatedNetCents    int64     `json:"estimatedNetCents"`
	AdvancesCents        int64     `json:"advancesCents"`
	FinalNetCents        int64     `json:"finalNetCents"`
}

type companyMonthTotals struct {
	CompanyID            uuid.UUID
	CompanyName          string
	Currency             string
	GrossCents           int64
	AdvancesCents        int64
	WithholdingPercent   float64
	OtherDeductionsCents int64
}

// MonthIncomeBreakdown aggregates a user's work entries for one month,
// grouped by company. Withholding is a percentage of the month's gross,
// rounded half up to whole cents. Fixed deductions apply once per month
// a company has any work entry, not per entry.
func MonthIncomeBreakdown(db *gorm.DB, userID uuid.UUID, month types.Month) ([]CompanyIncome, error) {
	var rows []companyMonthTotals

	err := db.Model(&WorkEntry{}).
		Select("work_entries.company_id, companies.name as company_name, companies.currency, "+
			"SUM(work_entries.gross_cents) as gross_cents, SUM(work_entries.advances_cents) as advances_cents, "+
			"companies.withholding_percent, companies.other_deductions_cents").
		Joins("JOIN companies ON companies.id = work_entries.company_id").
		Where("work_entries.user_id = ? AND work_entries.date >= ? AND work_entries.date < ?", userID, month.First(), month.Next()).
		Group("work_entries.company_id").
		Order("companies.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	breakdown := make([]CompanyIncome, 0, len(rows))
	for _, row := range rows {
		withholding := decimal.NewFromInt(row.GrossCents).
			Mul(decimal.NewFromFloat(row.WithholdingPercent)).
			Div(decimal.NewFromInt(100)).
			Round(0).IntPart()

		estimatedNet := row.GrossCents - withholding - row.OtherDeductionsCents
		finalNet := estimatedNet - row.AdvancesCents

		breakdown = append(breakdown, CompanyIncome{
			CompanyID:            row.CompanyID,
			CompanyName:          row.CompanyName,
			Currency:             row.Currency,
			GrossCents:           row.GrossCents,
			WithholdingCents:     withholding,
			OtherDeductionsCents: row.OtherDeductionsCents,
			EstimatedNetCents:    estimatedNet,
			AdvancesCents:        row.AdvancesCents,
			FinalNetCents:        finalNet,
		})
	}

	return breakdown, nil
}

// MonthIncomeNetByCurrency sums the final net income of a month per
// currency. Currencies outside the supported set are carried through so
// that callers can decide how to handle them.
func MonthIncomeNetByCurrency(db *gorm.DB, userID uuid.UUID, month types.Month) (map[string]int64, error) {
	breakdown, err := MonthIncomeBreakdown(db, userID, month)
	if err != nil {
		return nil, err
	}

	net := make(map[string]int64)
	for _, income := range breakdown {
		net[income.Currency] += income.FinalNetCents
	}

	return net, nil
}

// MonthExpensesByCurrency sums all expenses of a month per currency.
func MonthExpensesByCurrency(db *gorm.DB, userID uuid.UUID, month types.Month) (map[string]int64, error) {
	return monthExpenses(db, userID, month, nil)
}

// MonthExpensesOffBankByCurrency sums only the expenses that did not
// post a bank movement. The closure movement subtracts these so that
// on-bank expenses are not counted twice.
func MonthExpensesOffBankByCurrency(db *gorm.DB, userID uuid.UUID, month types.Month) (map[string]int64, error) {
	offBank := false
	return monthExpenses(db, userID, month, &offBank)
}

func monthExpenses(db *gorm.DB, userID uuid.UUID, month types.Month, affectsBank *bool) (map[string]int64, error) {
	var rows []struct {
		Currency string
		Total    int64
	}

	query := db.Model(&Expense{}).
		Select("currency, SUM(amount_cents) as total").
		Where("user_id = ? AND date >= ? AND date < ?", userID, month.First(), month.Next())

	if affectsBank != nil {
		query = query.Where("affects_bank = ?", *affectsBank)
	}

	err := query.Group("currency").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int64)
	for _, row := range rows {
		totals[row.Currency] = row.Total
	}

	return totals, nil
}

// MonthExpensesByCategory sums a month's expenses per category for one
// currency, for the monthly report.
func MonthExpensesByCategory(db *gorm.DB, userID uuid.UUID, month types.Month, currency string) (map[string]int64, error) {
	if !money.Valid(currency) {
		return nil, money.ErrCurrencyNotSupported
	}

	var rows []struct {
		Category string
		Total    int64
	}

	err := db.Model(&Expense{}).
		Select("category, SUM(amount_cents) as total").
		Where("user_id = ? AND currency = ? AND date >= ? AND date < ?", userID, currency, month.First(), month.Next()).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int64)
	for _, row := range rows {
		totals[row.Category] = row.Total
	}

	return totals, nil
}
