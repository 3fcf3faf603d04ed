package models_test

import (
	"testing"
	"time"

	"github.com/misfinanzas/backend/internal/models"
	"github.com/misfinanzas/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCloseMonthPostsSummaryMovement() {
	user := suite.createTestUser("closure@example.com")
	company := suite.createTestCompany(models.Company{
		UserID:               user.ID,
		Currency:             "EUR",
		DayRateCents:         10000,
		WithholdingPercent:   10,
		OtherDeductionsCents: 5000,
	})

	// Gross 100000, withholding 10000, other deductions 5000,
	// advances 10000: final net 75000.
	suite.createTestWorkEntry(models.WorkEntry{
		UserID:        user.ID,
		CompanyID:     company.ID,
		Date:          time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		DayHours:      10,
		AdvancesCents: 10000,
	})

	// Off-bank, so the closure subtracts it from the summary.
	suite.createTestExpense(models.Expense{
		UserID:      user.ID,
		Date:        time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC),
		AmountCents: 2000,
		AffectsBank: false,
	})

	closure, err := models.CloseMonth(models.DB, user.ID, types.NewMonth(2026, time.February))
	suite.Require().NoError(err)

	var movements []models.BankMovement
	err = models.DB.Where(&models.BankMovement{UserID: user.ID}).Find(&movements).Error
	suite.Require().NoError(err)
	suite.Require().Len(movements, 1)

	movement := movements[0]
	suite.Assert().Equal(models.MovementMonthClosure, movement.Type)
	suite.Assert().Equal(int64(73000), movement.AmountCents)
	suite.Assert().Equal("EUR", movement.Currency)
	suite.Assert().True(movement.Date.Equal(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)), "movement is not dated on the last day of the month: %s", movement.Date)
	suite.Require().NotNil(movement.MonthClosureID)
	suite.Assert().Equal(closure.ID, *movement.MonthClosureID)
}

func (suite *TestSuiteStandard) TestCloseMonthTwiceFails() {
	user := suite.createTestUser("twice@example.com")
	company := suite.createTestCompany(models.Company{UserID: user.ID, DayRateCents: 1000})

	suite.createTestWorkEntry(models.WorkEntry{
		UserID:    user.ID,
		CompanyID: company.ID,
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		DayHours:  8,
	})

	month := types.NewMonth(2026, time.March)

	_, err := models.CloseMonth(models.DB, user.ID, month)
	suite.Require().NoError(err)

	_, err = models.CloseMonth(models.DB, user.ID, month)
	suite.Assert().ErrorIs(err, models.ErrMonthAlreadyClosed)

	// The failed second close must not have posted anything.
	var count int64
	err = models.DB.Model(&models.BankMovement{}).Where("user_id = ?", user.ID).Count(&count).Error
	suite.Require().NoError(err)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestCloseMonthSkipsZeroCurrencies() {
	user := suite.createTestUser("zero@example.com")

	_, err := models.CloseMonth(models.DB, user.ID, types.NewMonth(2026, time.April))
	suite.Require().NoError(err)

	var count int64
	err = models.DB.Model(&models.BankMovement{}).Where("user_id = ?", user.ID).Count(&count).Error
	suite.Require().NoError(err)
	suite.Assert().Equal(int64(0), count, "closing a month without activity must not post movements")
}

func (suite *TestSuiteStandard) TestClosedMonthRejectsWrites() {
	user := suite.createTestUser("locked@example.com")
	company := suite.createTestCompany(models.Company{UserID: user.ID, DayRateCents: 1000})
	debt := suite.createTestDebt(models.Debt{UserID: user.ID, TotalCents: 5000})

	closedDate := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)

	_, err := models.CloseMonth(models.DB, user.ID, types.MonthOf(closedDate))
	suite.Require().NoError(err)

	tests := []struct {
		name  string
		model any
	}{
		{"work entry", &models.WorkEntry{UserID: user.ID, CompanyID: company.ID, Date: closedDate, DayHours: 1}},
		{"expense", &models.Expense{UserID: user.ID, Date: closedDate, Category: "Food", Concept: "Lunch", AmountCents: 500, Currency: "EUR"}},
		{"debt payment", &models.DebtPayment{UserID: user.ID, DebtID: debt.ID, Date: closedDate, AmountCents: 500}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(tt.model).Error
			assert.ErrorIs(t, err, models.ErrMonthClosed)
		})
	}

	// The month after stays open.
	suite.createTestExpense(models.Expense{
		UserID:      user.ID,
		Date:        closedDate.AddDate(0, 1, 0),
		AmountCents: 500,
	})
}

func (suite *TestSuiteStandard) TestClosuresAreScopedToUser() {
	alice := suite.createTestUser("alice-closure@example.com")
	bob := suite.createTestUser("bob-closure@example.com")

	month := types.NewMonth(2026, time.June)

	_, err := models.CloseMonth(models.DB, alice.ID, month)
	suite.Require().NoError(err)

	// Bob can still write into the month Alice closed.
	suite.createTestExpense(models.Expense{
		UserID:      bob.ID,
		Date:        time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		AmountCents: 1000,
	})

	closures, err := models.ClosuresOf(models.DB, alice.ID)
	suite.Require().NoError(err)
	suite.Assert().Len(closures, 1)

	closures, err = models.ClosuresOf(models.DB, bob.ID)
	suite.Require().NoError(err)
	suite.Assert().Len(closures, 0)
}
