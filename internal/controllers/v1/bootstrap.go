package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/misfinanzas/backend/internal/httputil"
	"github.com/misfinanzas/backend/internal/models"
	"github.com/misfinanzas/backend/internal/money"
)

// RegisterBootstrapRoutes registers the initial-load route with
// the RouterGroup that is passed.
func RegisterBootstrapRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetBootstrap)
}

type BootstrapResponse struct {
	Data Bootstrap `json:"data"`
}

// Bootstrap is the initial payload a client loads: row counts for the
// navigation badges and the current bank state.
type Bootstrap struct {
	Counts              Counts            `json:"counts"`
	BalanceByCurrency   map[string]string `json:"balanceByCurrency"`
	SupportedCurrencies []string          `json:"supportedCurrencies"`
}

type Counts struct {
	Companies   int64 `json:"companies" example:"2"`
	WorkEntries int64 `json:"workEntries" example:"41"`
	Expenses    int64 `json:"expenses" example:"17"`
	Debts       int64 `json:"debts" example:"1"`
}

// GetBootstrap returns the initial-load payload for the user.
func GetBootstrap(c *gin.Context) {
	user := currentUser(c)

	var counts Counts
	for _, count := range []struct {
		model any
		into  *int64
	}{
		{&models.Company{}, &counts.Companies},
		{&models.WorkEntry{}, &counts.WorkEntries},
		{&models.Expense{}, &counts.Expenses},
		{&models.Debt{}, &counts.Debts},
	} {
		err := models.DB.Model(count.model).Where("user_id = ?", user.ID).Count(count.into).Error
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}
	}

	balance, err := models.BalanceByCurrency(models.DB, user.ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BootstrapResponse{Data: Bootstrap{
		Counts:              counts,
		BalanceByCurrency:   money.CentsMapStrings(balance),
		SupportedCurrencies: money.Currencies,
	}})
}
