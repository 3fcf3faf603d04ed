package v1

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/misfinanzas/backend/internal/httputil"
	"github.com/misfinanzas/backend/internal/models"
	"github.com/misfinanzas/backend/internal/money"
	"github.com/misfinanzas/backend/internal/types"
	"github.com/shopspring/decimal"
)

// RegisterPremiumRoutes registers the routes that require at least the
// premium plan with the RouterGroup that is passed.
func RegisterPremiumRoutes(r *gin.RouterGroup) {
	r.Use(RequireRole(models.RolePremium))

	r.OPTIONS("/projection/annual", httputil.OptionsGet)
	r.GET("/projection/annual", GetAnnualProjection)

	r.OPTIONS("/simulate-salary", httputil.OptionsPost)
	r.POST("/simulate-salary", SimulateSalary)

	r.OPTIONS("/export/csv", httputil.OptionsGet)
	r.GET("/export/csv", ExportCSV)
}

type AnnualProjectionResponse struct {
	Data AnnualProjection `json:"data"`
}

type AnnualProjection struct {
	Year   int               `json:"year" example:"2026"`
	Months []ProjectionMonth `json:"months"`
	Totals ProjectionTotals  `json:"totals"`
}

type ProjectionMonth struct {
	Month               int               `json:"month" example:"2"`
	IncomeNetByCurrency map[string]string `json:"incomeNetByCurrency"`
	ExpensesByCurrency  map[string]string `json:"expensesByCurrency"`
	SavingsByCurrency   map[string]string `json:"savingsByCurrency"`
}

type ProjectionTotals struct {
	IncomeNetByCurrency map[string]string `json:"incomeNetByCurrency"`
	ExpensesByCurrency  map[string]string `json:"expensesByCurrency"`
	SavingsByCurrency   map[string]string `json:"savingsByCurrency"`
}

func savings(income, expenses map[string]int64) map[string]int64 {
	out := make(map[string]int64)
	for currency, cents := range income {
		out[currency] = cents
	}
	for currency, cents := range expenses {
		out[currency] -= cents
	}

	return out
}

// GetAnnualProjection aggregates income, expenses and savings for every
// month of a year.
func GetAnnualProjection(c *gin.Context) {
	var query struct {
		Year int `form:"year" binding:"required" example:"2026"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if query.Year < 2000 || query.Year > 2100 {
		c.JSON(http.StatusBadRequest, httpError{Error: errYearOutOfRange.Error()})
		return
	}

	user := currentUser(c)

	projection := AnnualProjection{
		Year:   query.Year,
		Months: make([]ProjectionMonth, 0, 12),
	}
	totalIncome := make(map[string]int64)
	totalExpenses := make(map[string]int64)

	for m := time.January; m <= time.December; m++ {
		month := types.NewMonth(query.Year, m)

		income, err := models.MonthIncomeNetByCurrency(models.DB, user.ID, month)
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		expenses, err := models.MonthExpensesByCurrency(models.DB, user.ID, month)
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		for currency, cents := range income {
			totalIncome[currency] += cents
		}
		for currency, cents := range expenses {
			totalExpenses[currency] += cents
		}

		projection.Months = append(projection.Months, ProjectionMonth{
			Month:               int(m),
			IncomeNetByCurrency: money.CentsMapStrings(income),
			ExpensesByCurrency:  money.CentsMapStrings(expenses),
			SavingsByCurrency:   money.CentsMapStrings(savings(income, expenses)),
		})
	}

	projection.Totals = ProjectionTotals{
		IncomeNetByCurrency: money.CentsMapStrings(totalIncome),
		ExpensesByCurrency:  money.CentsMapStrings(totalExpenses),
		SavingsByCurrency:   money.CentsMapStrings(savings(totalIncome, totalExpenses)),
	}

	c.JSON(http.StatusOK, AnnualProjectionResponse{Data: projection})
}

type SimulationEditable struct {
	CompanyID  string  `json:"companyId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	DayHours   float64 `json:"dayHours" example:"8"`
	NightHours float64 `json:"nightHours" example:"0"`
	Bonus      string  `json:"bonus" example:"0"`
	Pluses     string  `json:"pluses" example:"0"`
	Advances   string  `json:"advances" example:"0"`
}

type SimulationResponse struct {
	Data Simulation `json:"data"`
}

// Simulation is a salary computation that stores nothing. It uses the
// same arithmetic as work entry creation and the monthly breakdown.
type Simulation struct {
	Currency        string `json:"currency" example:"EUR"`
	Gross           string `json:"gross" example:"80.00"`
	Withholding     string `json:"withholding" example:"8.00"`
	OtherDeductions string `json:"otherDeductions" example:"5.00"`
	Advances        string `json:"advances" example:"0.00"`
	EstimatedNet    string `json:"estimatedNet" example:"67.00"`
	FinalNet        string `json:"finalNet" example:"67.00"`
}

// SimulateSalary computes what a day of work would pay without creating
// a work entry.
func SimulateSalary(c *gin.Context) {
	var editable SimulationEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if editable.DayHours < 0 || editable.NightHours < 0 {
		c.JSON(http.StatusBadRequest, httpError{Error: models.ErrHoursNegative.Error()})
		return
	}

	companyID, err := httputil.UUIDFromString(editable.CompanyID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	company, err := models.CompanyOf(models.DB, currentUser(c).ID, companyID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	bonus, err := optionalCents(editable.Bonus, company.Currency)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	pluses, err := optionalCents(editable.Pluses, company.Currency)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	advances, err := optionalCents(editable.Advances, company.Currency)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	gross := models.ComputeGrossCents(editable.DayHours, editable.NightHours, company.DayRateCents, company.NightRateCents, bonus, pluses)
	withholding := decimal.NewFromInt(gross).
		Mul(decimal.NewFromFloat(company.WithholdingPercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).IntPart()
	estimatedNet := gross - withholding - company.OtherDeductionsCents
	finalNet := estimatedNet - advances

	c.JSON(http.StatusOK, SimulationResponse{Data: Simulation{
		Currency:        company.Currency,
		Gross:           money.CentsString(gross),
		Withholding:     money.CentsString(withholding),
		OtherDeductions: money.CentsString(company.OtherDeductionsCents),
		Advances:        money.CentsString(advances),
		EstimatedNet:    money.CentsString(estimatedNet),
		FinalNet:        money.CentsString(finalNet),
	}})
}

// ExportCSV streams the user's work entries and expenses for a date
// range as CSV. The range defaults to the last year.
func ExportCSV(c *gin.Context) {
	user := currentUser(c)
	today := time.Now().UTC().Truncate(24 * time.Hour)

	from := today.AddDate(-1, 0, 0)
	if raw, ok := c.GetQuery("from"); ok {
		var err error
		from, err = types.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
			return
		}
	}

	to := today
	if raw, ok := c.GetQuery("to"); ok {
		var err error
		to, err = types.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
			return
		}
	}

	if from.After(to) {
		c.JSON(http.StatusBadRequest, httpError{Error: errDateRangeOrder.Error()})
		return
	}

	// The range is inclusive of the to date.
	endExclusive := to.AddDate(0, 0, 1)

	var entries []models.WorkEntry
	err := models.DB.
		Preload("Company").
		Where("user_id = ? AND date >= ? AND date < ?", user.ID, from, endExclusive).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var expenses []models.Expense
	err = models.DB.
		Where("user_id = ? AND date >= ? AND date < ?", user.ID, from, endExclusive).
		Order("date ASC").
		Find(&expenses).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	filename := fmt.Sprintf("finanzas-%s_%s.csv", from.Format("2006-01-02"), to.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"kind", "date", "currency", "amount", "company", "category", "concept", "note"})

	for _, entry := range entries {
		_ = w.Write([]string{
			"income_entry",
			entry.Date.Format("2006-01-02"),
			entry.Company.Currency,
			money.CentsString(entry.GrossCents),
			entry.Company.Name,
			"",
			"",
			"Daily gross",
		})
	}

	for _, expense := range expenses {
		note := "Off bank"
		if expense.AffectsBank {
			note = "On bank"
		}

		_ = w.Write([]string{
			"expense",
			expense.Date.Format("2006-01-02"),
			expense.Currency,
			money.CentsString(expense.AmountCents),
			"",
			expense.Category,
			expense.Concept,
			note,
		})
	}

	w.Flush()
}
