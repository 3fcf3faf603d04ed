package v1_test

import (
	"net/http"

	"github.com/misfinanzas/backend/test"
)

func (suite *TestSuiteStandard) TestExpenseLifecycle() {
	cookie := suite.registerUser("spender@example.com")

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/expenses",
		`{"date": "2026-02-11", "category": "Food", "concept": "Groceries", "amount": "42,50", "currency": "EUR"}`,
		session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created struct {
		Data struct {
			Amount      string `json:"amount"`
			AffectsBank bool   `json:"affectsBank"`
		} `json:"data"`
	}
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Assert().Equal("42.50", created.Data.Amount)
	suite.Assert().True(created.Data.AffectsBank, "affectsBank must default to true")

	// The bank summary shows the outflow
	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/bank/summary", "", session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var summary struct {
		Data struct {
			BalanceByCurrency map[string]string `json:"balanceByCurrency"`
		} `json:"data"`
	}
	test.DecodeResponse(suite.T(), &recorder, &summary)
	suite.Assert().Equal("-42.50", summary.Data.BalanceByCurrency["EUR"])
}

func (suite *TestSuiteStandard) TestExpenseValidationErrors() {
	cookie := suite.registerUser("validator@example.com")

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"bad date", `{"date": "11.02.2026", "category": "Food", "concept": "x", "amount": "1"}`, http.StatusBadRequest},
		{"unsupported currency", `{"date": "2026-02-11", "category": "Food", "concept": "x", "amount": "1", "currency": "USD"}`, http.StatusBadRequest},
		{"zero amount", `{"date": "2026-02-11", "category": "Food", "concept": "x", "amount": "0"}`, http.StatusBadRequest},
		{"missing category", `{"date": "2026-02-11", "concept": "x", "amount": "1"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/expenses", tt.body, session(cookie))
		test.AssertHTTPStatus(suite.T(), &recorder, tt.status)
	}
}

func (suite *TestSuiteStandard) TestExpensesAreIsolatedPerUser() {
	alice := suite.registerUser("alice@example.com")
	bob := suite.registerUser("bob@example.com")

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/expenses",
		`{"date": "2026-02-11", "category": "Food", "concept": "Groceries", "amount": "10"}`,
		session(alice))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var list struct {
		Data []any `json:"data"`
	}

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/expenses", "", session(bob))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Assert().Len(list.Data, 0)
}
