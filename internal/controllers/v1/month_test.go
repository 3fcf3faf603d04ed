package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/misfinanzas/backend/internal/controllers/v1"
	"github.com/misfinanzas/backend/test"
)

// createTestCompany creates a company through the API and returns its ID.
func (suite *TestSuiteStandard) createTestCompany(cookie string) string {
	body := `{"name": "Acme Inc.", "currency": "EUR", "dayRate": "100.00", "nightRate": "120.00", "withholdingPercent": 10, "otherDeductions": "50.00"}`
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/companies", body, session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.CompanyResponse
	test.DecodeResponse(suite.T(), &recorder, &created)

	return created.Data.ID
}

func (suite *TestSuiteStandard) TestCloseMonthFlow() {
	cookie := suite.registerUser("closer@example.com")
	companyID := suite.createTestCompany(cookie)

	// A day of work: gross 10 * 100.00 = 1000.00, withholding 100.00,
	// other deductions 50.00, advances 100.00
	body := fmt.Sprintf(`{"companyId": %q, "date": "2026-02-10", "dayHours": 10, "advances": "100.00"}`, companyID)
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/work-entries", body, session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	// An off-bank expense reduces the closure amount
	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/expenses",
		`{"date": "2026-02-15", "category": "Food", "concept": "Cash lunch", "amount": "20.00", "affectsBank": false}`,
		session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/months/close", `{"year": 2026, "month": 2}`, session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var closure v1.ClosureResponse
	test.DecodeResponse(suite.T(), &recorder, &closure)
	suite.Assert().Equal(2026, closure.Data.Year)
	suite.Assert().Equal(2, closure.Data.Month)

	// net 750.00 minus off-bank 20.00 hits the bank
	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/bank/summary", "", session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var summary v1.BankSummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &summary)
	suite.Assert().Equal("730.00", summary.Data.BalanceByCurrency["EUR"])

	// Closing the same month again is a conflict
	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/months/close", `{"year": 2026, "month": 2}`, session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)

	// A closed month no longer accepts writes
	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/expenses",
		`{"date": "2026-02-20", "category": "Food", "concept": "Too late", "amount": "5.00"}`,
		session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/months/closures", "", session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var closures v1.ClosureListResponse
	test.DecodeResponse(suite.T(), &recorder, &closures)
	suite.Assert().Len(closures.Data, 1)
}

func (suite *TestSuiteStandard) TestCloseMonthValidation() {
	cookie := suite.registerUser("invalid-closer@example.com")

	tests := []struct {
		name string
		body string
	}{
		{"year too small", `{"year": 1999, "month": 1}`},
		{"year too large", `{"year": 2101, "month": 1}`},
		{"month too small", `{"year": 2026, "month": 0}`},
		{"month too large", `{"year": 2026, "month": 13}`},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/months/close", tt.body, session(cookie))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestMonthlyReport() {
	cookie := suite.registerUser("reporter@example.com")
	companyID := suite.createTestCompany(cookie)

	body := fmt.Sprintf(`{"companyId": %q, "date": "2026-03-02", "dayHours": 8}`, companyID)
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/work-entries", body, session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/expenses",
		`{"date": "2026-03-05", "category": "Transport", "concept": "Fuel", "amount": "60.00"}`,
		session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/reports/monthly?year=2026&month=3", "", session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var report v1.MonthlyReportResponse
	test.DecodeResponse(suite.T(), &recorder, &report)

	suite.Assert().False(report.Data.Closed)
	suite.Require().Len(report.Data.IncomeByCompany, 1)

	income := report.Data.IncomeByCompany[0]
	suite.Assert().Equal("Acme Inc.", income.CompanyName)
	suite.Assert().Equal("800.00", income.Gross)
	suite.Assert().Equal("80.00", income.Withholding)
	suite.Assert().Equal("50.00", income.OtherDeductions)
	suite.Assert().Equal("670.00", income.FinalNet)

	suite.Assert().Equal("670.00", report.Data.IncomeNetByCurrency["EUR"])
	suite.Assert().Equal("60.00", report.Data.ExpensesByCurrency["EUR"])
	suite.Assert().Equal("-60.00", report.Data.BankBalanceByCurrency["EUR"])
}

func (suite *TestSuiteStandard) TestMonthlyReportRequiresPeriod() {
	cookie := suite.registerUser("impatient@example.com")

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/reports/monthly", "", session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
