package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/misfinanzas/backend/internal/httputil"
	"github.com/misfinanzas/backend/internal/models"
	"github.com/misfinanzas/backend/internal/money"
	"github.com/misfinanzas/backend/internal/types"
	"gorm.io/gorm"
)

// RegisterDebtRoutes registers the routes for debts with
// the RouterGroup that is passed.
func RegisterDebtRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetDebts)
	r.POST("", CreateDebt)

	r.OPTIONS("/:id/payments", httputil.OptionsGetPost)
	r.GET("/:id/payments", GetDebtPayments)
	r.POST("/:id/payments", CreateDebtPayment)
}

type DebtEditable struct {
	Creditor string `json:"creditor" example:"Landlord"`
	Total    string `json:"total" example:"100.00"`
	Currency string `json:"currency" example:"EUR"`
}

type DebtResponse struct {
	Data Debt `json:"data"`
}

type DebtListResponse struct {
	Data []Debt `json:"data"`
}

// Debt is the API representation of money owed to a creditor. Remaining
// and Paid are derived from the payment log on every read.
type Debt struct {
	ID        string `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Creditor  string `json:"creditor" example:"Landlord"`
	Currency  string `json:"currency" example:"EUR"`
	Total     string `json:"total" example:"100.00"`
	Remaining string `json:"remaining" example:"70.00"`
	Paid      bool   `json:"paid" example:"false"`
}

func newDebt(db *gorm.DB, debt models.Debt) (Debt, error) {
	remaining, paid, err := debt.Remaining(db)
	if err != nil {
		return Debt{}, err
	}

	return Debt{
		ID:        debt.ID.String(),
		Creditor:  debt.Creditor,
		Currency:  debt.Currency,
		Total:     money.CentsString(debt.TotalCents),
		Remaining: money.CentsString(remaining),
		Paid:      paid,
	}, nil
}

type DebtPaymentEditable struct {
	Date   string `json:"date" example:"2026-02-15"`
	Amount string `json:"amount" example:"30.00"`
}

type DebtPaymentResponse struct {
	Data DebtPayment `json:"data"`
}

type DebtPaymentListResponse struct {
	Data []DebtPayment `json:"data"`
}

// DebtPayment is the API representation of a payment towards a debt.
type DebtPayment struct {
	ID     string `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	DebtID string `json:"debtId" example:"44b09f33-2a67-4b23-9b64-0e93e544ef35"`
	Date   string `json:"date" example:"2026-02-15"`
	Amount string `json:"amount" example:"30.00"`
}

func newDebtPayment(payment models.DebtPayment) DebtPayment {
	return DebtPayment{
		ID:     payment.ID.String(),
		DebtID: payment.DebtID.String(),
		Date:   payment.Date.Format("2006-01-02"),
		Amount: money.CentsString(payment.AmountCents),
	}
}

// GetDebts returns the user's debts with their remaining amounts.
func GetDebts(c *gin.Context) {
	var debts []models.Debt
	err := models.DB.Where(&models.Debt{UserID: currentUser(c).ID}).
		Order("created_at DESC").
		Find(&debts).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Debt, 0, len(debts))
	for _, debt := range debts {
		d, err := newDebt(models.DB, debt)
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}
		data = append(data, d)
	}

	c.JSON(http.StatusOK, DebtListResponse{Data: data})
}

// CreateDebt creates a new debt.
func CreateDebt(c *gin.Context) {
	var editable DebtEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(editable.Currency))
	if currency == "" {
		currency = "EUR"
	}

	total, err := money.ParseCents(editable.Total, currency)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	debt := models.Debt{
		UserID:     currentUser(c).ID,
		Creditor:   editable.Creditor,
		TotalCents: total,
		Currency:   currency,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&debt).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data, err := newDebt(models.DB, debt)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, DebtResponse{Data: data})
}

// GetDebtPayments lists the payments of one debt, newest first.
func GetDebtPayments(c *gin.Context) {
	debtID, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user := currentUser(c)

	// Scope check before listing so that foreign debts 404.
	debt, err := models.DebtOf(models.DB, user.ID, debtID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var payments []models.DebtPayment
	err = models.DB.Where(&models.DebtPayment{UserID: user.ID, DebtID: debt.ID}).
		Order("date DESC, created_at DESC").
		Find(&payments).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]DebtPayment, 0, len(payments))
	for _, payment := range payments {
		data = append(data, newDebtPayment(payment))
	}

	c.JSON(http.StatusOK, DebtPaymentListResponse{Data: data})
}

// CreateDebtPayment records a payment towards a debt. The outgoing bank
// movement posts in the same transaction.
func CreateDebtPayment(c *gin.Context) {
	debtID, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editable DebtPaymentEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	date, err := types.ParseDate(editable.Date)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user := currentUser(c)

	var payment models.DebtPayment
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		debt, err := models.DebtOf(tx, user.ID, debtID)
		if err != nil {
			return err
		}

		amount, err := money.ParseCents(editable.Amount, debt.Currency)
		if err != nil {
			return err
		}

		payment = models.DebtPayment{
			UserID:      user.ID,
			DebtID:      debt.ID,
			Date:        date,
			AmountCents: amount,
		}

		return tx.Create(&payment).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, DebtPaymentResponse{Data: newDebtPayment(payment)})
}
