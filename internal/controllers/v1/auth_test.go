package v1_test

import (
	"net/http"

	"github.com/misfinanzas/backend/test"
)

func (suite *TestSuiteStandard) TestRegisterLoginMe() {
	cookie := suite.registerUser("jane@example.com")

	var response struct {
		Data struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
	}

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/auth/me", "", session(cookie))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("jane@example.com", response.Data.Email)
	suite.Assert().Equal("FREE", response.Data.Role)

	// Login with the right and the wrong password
	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/auth/login", `{"email": "jane@example.com", "password": "correct horse battery staple"}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/auth/login", `{"email": "jane@example.com", "password": "wrong"}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)

	// An empty email must not resolve to any account
	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/auth/login", `{"email": "", "password": "correct horse battery staple"}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestMeRequiresSession() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/auth/me", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/auth/me", "", session("mf_session=not-a-token"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestRegisterDuplicateEmail() {
	suite.registerUser("dupe@example.com")

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/auth/register", `{"email": "dupe@example.com", "password": "correct horse battery staple"}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestRegisterEmptyBody() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/auth/register", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
