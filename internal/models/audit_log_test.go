package models_test

import (
	"github.com/misfinanzas/backend/internal/models"
)

func (suite *TestSuiteStandard) TestRecordAuditEnrichesEmails() {
	actor := suite.createTestUser("actor@example.com")
	target := suite.createTestUser("target@example.com")

	models.RecordAudit(models.DB, actor.ID, &target.ID, "user.set_plan", "PREMIUM", models.RequestMeta{IP: "192.0.2.10", UserAgent: "tests"})

	entries, err := models.AuditLogs(models.DB, 10)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)

	entry := entries[0]
	suite.Assert().Equal("actor@example.com", entry.ActorEmail)
	suite.Assert().Equal("target@example.com", entry.TargetEmail)
	suite.Assert().Equal("user.set_plan", entry.Action)
	suite.Assert().Equal("PREMIUM", entry.Detail)
	suite.Assert().Equal("192.0.2.10", entry.RequestIP)
	suite.Assert().Equal("tests", entry.RequestUserAgent)
}

func (suite *TestSuiteStandard) TestRecordAuditWithoutTarget() {
	actor := suite.createTestUser("actor-solo@example.com")

	models.RecordAudit(models.DB, actor.ID, nil, "auth.login", "", models.RequestMeta{})

	entries, err := models.AuditLogs(models.DB, 10)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Assert().Nil(entries[0].TargetID)
	suite.Assert().Empty(entries[0].TargetEmail)
}
