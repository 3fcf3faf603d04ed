package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/misfinanzas/backend/internal/httputil"
	"github.com/misfinanzas/backend/internal/models"
	"github.com/misfinanzas/backend/internal/money"
	"github.com/misfinanzas/backend/internal/types"
	"gorm.io/gorm"
)

// RegisterMonthRoutes registers the routes for month closures with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/close", httputil.OptionsPost)
	r.POST("/close", CloseMonth)

	r.OPTIONS("/closures", httputil.OptionsGet)
	r.GET("/closures", GetClosures)
}

type MonthEditable struct {
	Year  int `json:"year" example:"2026"`
	Month int `json:"month" example:"2"`
}

type ClosureResponse struct {
	Data Closure `json:"data"`
}

type ClosureListResponse struct {
	Data []Closure `json:"data"`
}

// Closure is the API representation of a closed month.
type Closure struct {
	ID       string `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Year     int    `json:"year" example:"2026"`
	Month    int    `json:"month" example:"2"`
	ClosedAt string `json:"closedAt" example:"2026-03-01T10:24:30.123Z"`
}

func newClosure(closure models.MonthClosure) Closure {
	return Closure{
		ID:       closure.ID.String(),
		Year:     closure.Year,
		Month:    closure.Month,
		ClosedAt: closure.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

func (editable MonthEditable) month() (types.Month, error) {
	if editable.Year < 2000 || editable.Year > 2100 {
		return types.Month{}, errYearOutOfRange
	}

	if editable.Month < 1 || editable.Month > 12 {
		return types.Month{}, errMonthOutOfRange
	}

	return types.NewMonth(editable.Year, time.Month(editable.Month)), nil
}

// CloseMonth freezes a month and posts its summary movements. Closing
// the same month twice is a conflict, not a no-op.
func CloseMonth(c *gin.Context) {
	var editable MonthEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	month, err := editable.month()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user := currentUser(c)

	var closure models.MonthClosure
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		closure, err = models.CloseMonth(tx, user.ID, month)
		return err
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	models.RecordAudit(models.DB, user.ID, nil, "months.close", month.String(), requestMeta(c))

	c.JSON(http.StatusCreated, ClosureResponse{Data: newClosure(closure)})
}

// GetClosures lists the user's closed months, newest period first.
func GetClosures(c *gin.Context) {
	closures, err := models.ClosuresOf(models.DB, currentUser(c).ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Closure, 0, len(closures))
	for _, closure := range closures {
		data = append(data, newClosure(closure))
	}

	c.JSON(http.StatusOK, ClosureListResponse{Data: data})
}

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/monthly", httputil.OptionsGet)
	r.GET("/monthly", GetMonthlyReport)
}

type QueryMonth struct {
	Year  int `form:"year" binding:"required" example:"2026"`
	Month int `form:"month" binding:"required" example:"2"`
}

func (query QueryMonth) month() (types.Month, error) {
	return MonthEditable{Year: query.Year, Month: query.Month}.month()
}

type MonthlyReportResponse struct {
	Data MonthlyReport `json:"data"`
}

type MonthlyReport struct {
	Year                      int               `json:"year" example:"2026"`
	Month                     int               `json:"month" example:"2"`
	Closed                    bool              `json:"isClosed" example:"false"`
	IncomeByCompany           []CompanyIncome   `json:"incomeByCompany"`
	IncomeNetByCurrency       map[string]string `json:"incomeNetByCurrency"`
	ExpensesByCurrency        map[string]string `json:"expensesByCurrency"`
	ExpensesOffBankByCurrency map[string]string `json:"expensesOffBankByCurrency"`
	BankBalanceByCurrency     map[string]string `json:"bankBalanceByCurrency"`
}

// CompanyIncome is one company's slice of the monthly report.
type CompanyIncome struct {
	CompanyID       string `json:"companyId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	CompanyName     string `json:"companyName" example:"Acme Inc."`
	Currency        string `json:"currency" example:"EUR"`
	Gross           string `json:"gross" example:"1000.00"`
	Withholding     string `json:"withholding" example:"100.00"`
	OtherDeductions string `json:"otherDeductions" example:"50.00"`
	EstimatedNet    string `json:"estimatedNet" example:"850.00"`
	Advances        string `json:"advances" example:"100.00"`
	FinalNet        string `json:"finalNet" example:"750.00"`
}

func newCompanyIncome(income models.CompanyIncome) CompanyIncome {
	return CompanyIncome{
		CompanyID:       income.CompanyID.String(),
		CompanyName:     income.CompanyName,
		Currency:        income.Currency,
		Gross:           money.CentsString(income.GrossCents),
		Withholding:     money.CentsString(income.WithholdingCents),
		OtherDeductions: money.CentsString(income.OtherDeductionsCents),
		EstimatedNet:    money.CentsString(income.EstimatedNetCents),
		Advances:        money.CentsString(income.AdvancesCents),
		FinalNet:        money.CentsString(income.FinalNetCents),
	}
}

// GetMonthlyReport aggregates one month: income per company, totals per
// currency and the current bank balance.
func GetMonthlyReport(c *gin.Context) {
	var query QueryMonth
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	month, err := query.month()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user := currentUser(c)

	closed, err := models.IsMonthClosed(models.DB, user.ID, month.First())
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	breakdown, err := models.MonthIncomeBreakdown(models.DB, user.ID, month)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	net, err := models.MonthIncomeNetByCurrency(models.DB, user.ID, month)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	expenses, err := models.MonthExpensesByCurrency(models.DB, user.ID, month)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	offBank, err := models.MonthExpensesOffBankByCurrency(models.DB, user.ID, month)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	balance, err := models.BalanceByCurrency(models.DB, user.ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	report := MonthlyReport{
		Year:                      month.Year(),
		Month:                     int(month.Month()),
		Closed:                    closed,
		IncomeByCompany:           make([]CompanyIncome, 0, len(breakdown)),
		IncomeNetByCurrency:       money.CentsMapStrings(net),
		ExpensesByCurrency:        money.CentsMapStrings(expenses),
		ExpensesOffBankByCurrency: money.CentsMapStrings(offBank),
		BankBalanceByCurrency:     money.CentsMapStrings(balance),
	}
	for _, income := range breakdown {
		report.IncomeByCompany = append(report.IncomeByCompany, newCompanyIncome(income))
	}

	c.JSON(http.StatusOK, MonthlyReportResponse{Data: report})
}
