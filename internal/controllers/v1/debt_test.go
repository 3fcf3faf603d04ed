package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/misfinanzas/backend/internal/controllers/v1"
	"github.com/misfinanzas/backend/test"
)

func (suite *TestSuiteStandard) TestDebtLifecycle() {
	cookie := suite.registerUser("debtor@example.com")

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/debts",
		`{"creditor": "Landlord", "total": "100.00", "currency": "EUR"}`, session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.DebtResponse
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Assert().Equal("100.00", created.Data.Total)
	suite.Assert().Equal("100.00", created.Data.Remaining)
	suite.Assert().False(created.Data.Paid)

	recorder = test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/debts/%s/payments", created.Data.ID),
		`{"date": "2026-02-15", "amount": "30.00"}`, session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/debts", "", session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.DebtListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal("70.00", list.Data[0].Remaining)
	suite.Assert().False(list.Data[0].Paid)

	// The payment posts a bank outflow
	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/bank/summary", "", session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var summary v1.BankSummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &summary)
	suite.Assert().Equal("-30.00", summary.Data.BalanceByCurrency["EUR"])

	// Paying the rest settles the debt
	recorder = test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/debts/%s/payments", created.Data.ID),
		`{"date": "2026-03-15", "amount": "70.00"}`, session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/debts", "", session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Assert().Equal("0.00", list.Data[0].Remaining)
	suite.Assert().True(list.Data[0].Paid)
}

func (suite *TestSuiteStandard) TestDebtOwnership() {
	alice := suite.registerUser("alice@example.com")
	bob := suite.registerUser("bob@example.com")

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/debts",
		`{"creditor": "Landlord", "total": "100.00"}`, session(alice))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.DebtResponse
	test.DecodeResponse(suite.T(), &recorder, &created)

	// A foreign debt does not exist for other users
	recorder = test.Request(suite.T(), suite.router, http.MethodGet,
		fmt.Sprintf("/v1/debts/%s/payments", created.Data.ID), "", session(bob))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/debts/%s/payments", created.Data.ID),
		`{"date": "2026-02-15", "amount": "30.00"}`, session(bob))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDebtValidation() {
	cookie := suite.registerUser("careless@example.com")

	tests := []struct {
		name string
		body string
	}{
		{"missing creditor", `{"total": "100.00"}`},
		{"zero total", `{"creditor": "Landlord", "total": "0"}`},
		{"bad currency", `{"creditor": "Landlord", "total": "100.00", "currency": "USD"}`},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/debts", tt.body, session(cookie))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}
