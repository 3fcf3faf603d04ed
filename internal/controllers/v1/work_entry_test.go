package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/misfinanzas/backend/internal/controllers/v1"
	"github.com/misfinanzas/backend/test"
)

func (suite *TestSuiteStandard) TestCreateWorkEntry() {
	cookie := suite.registerUser("laborer@example.com")
	companyID := suite.createTestCompany(cookie)

	body := fmt.Sprintf(`{"companyId": %q, "date": "2026-02-10", "clockIn": "09:00", "clockOut": "17:30", "breakMinutes": 30, "dayHours": 8, "bonus": "20.00"}`, companyID)
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/work-entries", body, session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.WorkEntryResponse
	test.DecodeResponse(suite.T(), &recorder, &created)

	// 8 * 100.00 + bonus
	suite.Assert().Equal("820.00", created.Data.Gross)
	suite.Assert().Equal("09:00", created.Data.ClockIn)
	suite.Assert().Equal("2026-02-10", created.Data.Date)
}

func (suite *TestSuiteStandard) TestWorkEntryMonthFilter() {
	cookie := suite.registerUser("filterer@example.com")
	companyID := suite.createTestCompany(cookie)

	for _, date := range []string{"2026-02-10", "2026-02-20", "2026-03-01"} {
		body := fmt.Sprintf(`{"companyId": %q, "date": %q, "dayHours": 8}`, companyID, date)
		recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/work-entries", body, session(cookie))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)
	}

	var list v1.WorkEntryListResponse

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/work-entries?month=2026-02", "", session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Assert().Len(list.Data, 2)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/work-entries", "", session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Assert().Len(list.Data, 3)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/work-entries?month=zucchini", "", session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestWorkEntryForeignCompany() {
	alice := suite.registerUser("alice@example.com")
	bob := suite.registerUser("bob@example.com")
	companyID := suite.createTestCompany(alice)

	body := fmt.Sprintf(`{"companyId": %q, "date": "2026-02-10", "dayHours": 8}`, companyID)
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/work-entries", body, session(bob))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestWorkEntryValidation() {
	cookie := suite.registerUser("sloppy@example.com")
	companyID := suite.createTestCompany(cookie)

	tests := []struct {
		name string
		body string
	}{
		{"bad company id", `{"companyId": "not-a-uuid", "date": "2026-02-10", "dayHours": 8}`},
		{"bad date", `{"companyId": "` + companyID + `", "date": "10/02/2026", "dayHours": 8}`},
		{"negative hours", `{"companyId": "` + companyID + `", "date": "2026-02-10", "dayHours": -1}`},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/work-entries", tt.body, session(cookie))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestBootstrap() {
	cookie := suite.registerUser("starter@example.com")
	companyID := suite.createTestCompany(cookie)

	body := fmt.Sprintf(`{"companyId": %q, "date": "2026-02-10", "dayHours": 8}`, companyID)
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/work-entries", body, session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/expenses",
		`{"date": "2026-02-11", "category": "Food", "concept": "Groceries", "amount": "15.00"}`, session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/bootstrap", "", session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var bootstrap v1.BootstrapResponse
	test.DecodeResponse(suite.T(), &recorder, &bootstrap)

	suite.Assert().Equal(int64(1), bootstrap.Data.Counts.Companies)
	suite.Assert().Equal(int64(1), bootstrap.Data.Counts.WorkEntries)
	suite.Assert().Equal(int64(1), bootstrap.Data.Counts.Expenses)
	suite.Assert().Equal(int64(0), bootstrap.Data.Counts.Debts)
	suite.Assert().Equal("-15.00", bootstrap.Data.BalanceByCurrency["EUR"])
	suite.Assert().Equal([]string{"EUR", "XAF"}, bootstrap.Data.SupportedCurrencies)
}
