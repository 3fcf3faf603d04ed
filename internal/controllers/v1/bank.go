package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/misfinanzas/backend/internal/httputil"
	"github.com/misfinanzas/backend/internal/models"
	"github.com/misfinanzas/backend/internal/money"
)

// RegisterBankRoutes registers the routes for the bank ledger with
// the RouterGroup that is passed.
func RegisterBankRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", httputil.OptionsGet)
	r.GET("/summary", GetBankSummary)
}

type BankSummaryResponse struct {
	Data BankSummary `json:"data"`
}

type BankSummary struct {
	BalanceByCurrency   map[string]string `json:"balanceByCurrency"`
	SupportedCurrencies []string          `json:"supportedCurrencies"`
	Movements           []BankMovement    `json:"movements"`
}

// BankMovement is the API representation of a ledger line.
type BankMovement struct {
	ID       string `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Date     string `json:"date" example:"2026-02-28"`
	Type     string `json:"type" example:"month-closure-posting"`
	Amount   string `json:"amount" example:"730.00"`
	Currency string `json:"currency" example:"EUR"`
	Note     string `json:"note" example:"Closure 2026-02"`
}

func newBankMovement(movement models.BankMovement) BankMovement {
	return BankMovement{
		ID:       movement.ID.String(),
		Date:     movement.Date.Format("2006-01-02"),
		Type:     movement.Type,
		Amount:   money.CentsString(movement.AmountCents),
		Currency: movement.Currency,
		Note:     movement.Note,
	}
}

// GetBankSummary returns the per-currency balance and the most recent
// movements.
func GetBankSummary(c *gin.Context) {
	user := currentUser(c)

	balance, err := models.BalanceByCurrency(models.DB, user.ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var movements []models.BankMovement
	err = models.DB.Where(&models.BankMovement{UserID: user.ID}).
		Order("date DESC, created_at DESC").
		Limit(200).
		Find(&movements).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := BankSummary{
		BalanceByCurrency:   money.CentsMapStrings(balance),
		SupportedCurrencies: money.Currencies,
		Movements:           make([]BankMovement, 0, len(movements)),
	}
	for _, movement := range movements {
		data.Movements = append(data.Movements, newBankMovement(movement))
	}

	c.JSON(http.StatusOK, BankSummaryResponse{Data: data})
}
