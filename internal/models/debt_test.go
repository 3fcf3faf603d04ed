package models_test

import (
	"time"

	"github.com/misfinanzas/backend/internal/models"
	"github.com/misfinanzas/backend/internal/money"
)

func (suite *TestSuiteStandard) TestDebtRemaining() {
	user := suite.createTestUser("debt@example.com")
	debt := suite.createTestDebt(models.Debt{UserID: user.ID, Creditor: "Landlord", TotalCents: 10000})

	suite.createTestDebtPayment(models.DebtPayment{
		UserID:      user.ID,
		DebtID:      debt.ID,
		Date:        time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		AmountCents: 3000,
	})

	remaining, paid, err := debt.Remaining(models.DB)
	suite.Require().NoError(err)
	suite.Assert().Equal(int64(7000), remaining)
	suite.Assert().False(paid)

	// Overpaying is allowed and marks the debt as paid.
	suite.createTestDebtPayment(models.DebtPayment{
		UserID:      user.ID,
		DebtID:      debt.ID,
		Date:        time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
		AmountCents: 8000,
	})

	remaining, paid, err = debt.Remaining(models.DB)
	suite.Require().NoError(err)
	suite.Assert().Equal(int64(-1000), remaining)
	suite.Assert().True(paid)
}

func (suite *TestSuiteStandard) TestDebtPaymentPostsMovement() {
	user := suite.createTestUser("debt-movement@example.com")
	debt := suite.createTestDebt(models.Debt{UserID: user.ID, Creditor: "Landlord", TotalCents: 10000})

	payment := suite.createTestDebtPayment(models.DebtPayment{
		UserID:      user.ID,
		DebtID:      debt.ID,
		Date:        time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		AmountCents: 3000,
	})

	var movements []models.BankMovement
	err := models.DB.Where(&models.BankMovement{UserID: user.ID}).Find(&movements).Error
	suite.Require().NoError(err)
	suite.Require().Len(movements, 1)

	movement := movements[0]
	suite.Assert().Equal(models.MovementDebtPayment, movement.Type)
	suite.Assert().Equal(int64(-3000), movement.AmountCents)
	suite.Assert().Equal("EUR", movement.Currency)
	suite.Assert().Equal("Debt payment to Landlord", movement.Note)
	suite.Require().NotNil(movement.RelatedDebtPaymentID)
	suite.Assert().Equal(payment.ID, *movement.RelatedDebtPaymentID)
}

func (suite *TestSuiteStandard) TestDebtPaymentOwnership() {
	alice := suite.createTestUser("alice-debt@example.com")
	bob := suite.createTestUser("bob-debt@example.com")
	aliceDebt := suite.createTestDebt(models.Debt{UserID: alice.ID, TotalCents: 10000})

	err := models.DB.Create(&models.DebtPayment{
		UserID:      bob.ID,
		DebtID:      aliceDebt.ID,
		Date:        time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		AmountCents: 3000,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDebtValidation() {
	user := suite.createTestUser("debt-validation@example.com")

	err := models.DB.Create(&models.Debt{UserID: user.ID, Creditor: "  ", TotalCents: 100, Currency: "EUR"}).Error
	suite.Assert().ErrorIs(err, models.ErrCreditorRequired)

	err = models.DB.Create(&models.Debt{UserID: user.ID, Creditor: "Landlord", TotalCents: 0, Currency: "EUR"}).Error
	suite.Assert().ErrorIs(err, money.ErrAmountNotPositive)

	err = models.DB.Create(&models.Debt{UserID: user.ID, Creditor: "Landlord", TotalCents: 100, Currency: "USD"}).Error
	suite.Assert().ErrorIs(err, money.ErrCurrencyNotSupported)
}
