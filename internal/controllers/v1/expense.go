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

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetExpenses)
	r.POST("", CreateExpense)
}

type ExpenseEditable struct {
	Date        string `json:"date" example:"2026-02-11"`
	Category    string `json:"category" example:"Food"`
	Concept     string `json:"concept" example:"Groceries"`
	Amount      string `json:"amount" example:"42,50"`
	Currency    string `json:"currency" example:"EUR"`
	AffectsBank *bool  `json:"affectsBank" example:"true"`
}

type ExpenseResponse struct {
	Data Expense `json:"data"`
}

type ExpenseListResponse struct {
	Data []Expense `json:"data"`
}

// Expense is the API representation of a spend.
type Expense struct {
	ID          string `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Date        string `json:"date" example:"2026-02-11"`
	Category    string `json:"category" example:"Food"`
	Concept     string `json:"concept" example:"Groceries"`
	Amount      string `json:"amount" example:"42.50"`
	Currency    string `json:"currency" example:"EUR"`
	AffectsBank bool   `json:"affectsBank" example:"true"`
}

func newExpense(expense models.Expense) Expense {
	return Expense{
		ID:          expense.ID.String(),
		Date:        expense.Date.Format("2006-01-02"),
		Category:    expense.Category,
		Concept:     expense.Concept,
		Amount:      money.CentsString(expense.AmountCents),
		Currency:    expense.Currency,
		AffectsBank: expense.AffectsBank,
	}
}

func (editable ExpenseEditable) model(user models.User) (models.Expense, error) {
	date, err := types.ParseDate(editable.Date)
	if err != nil {
		return models.Expense{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(editable.Currency))
	if currency == "" {
		currency = "EUR"
	}

	amount, err := money.ParseCents(editable.Amount, currency)
	if err != nil {
		return models.Expense{}, err
	}

	// Expenses hit the bank unless the request says otherwise.
	affectsBank := true
	if editable.AffectsBank != nil {
		affectsBank = *editable.AffectsBank
	}

	return models.Expense{
		UserID:      user.ID,
		Date:        date,
		Category:    editable.Category,
		Concept:     editable.Concept,
		AmountCents: amount,
		Currency:    currency,
		AffectsBank: affectsBank,
	}, nil
}

// GetExpenses returns the user's expenses, newest first. The optional
// month query parameter (YYYY-MM) restricts the list to one month.
func GetExpenses(c *gin.Context) {
	query := models.DB.Where(&models.Expense{UserID: currentUser(c).ID})

	if raw, ok := c.GetQuery("month"); ok {
		month, err := types.ParseMonth(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
			return
		}

		query = query.Where("date >= ? AND date < ?", month.First(), month.Next())
	}

	var expenses []models.Expense
	err := query.Order("date DESC, created_at DESC").Limit(500).Find(&expenses).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		data = append(data, newExpense(expense))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: data})
}

// CreateExpense creates a new expense. Expenses that affect the bank
// post their movement in the same transaction.
func CreateExpense(c *gin.Context) {
	var editable ExpenseEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	expense, err := editable.model(currentUser(c))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&expense).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ExpenseResponse{Data: newExpense(expense)})
}
