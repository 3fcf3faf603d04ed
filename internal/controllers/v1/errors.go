package v1

import (
	"errors"
	"net/http"

	"github.com/misfinanzas/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no company matching your query"`
}

// status returns the appropriate status for an engine error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrStateConflict) {
		return http.StatusConflict
	}

	if errors.Is(err, models.ErrNotAuthorized) {
		return http.StatusForbidden
	}

	return http.StatusBadRequest
}

var (
	errYearOutOfRange  = errors.New("the year must be between 2000 and 2100")
	errMonthOutOfRange = errors.New("the month must be between 1 and 12")
	errDateRangeOrder  = errors.New("the from date must not be after the to date")
)

// Plan and role management errors
var (
	errNotAPlan     = errors.New("only the FREE and PREMIUM plans can be assigned here")
	errTargetNoPlan = errors.New("only users on the FREE or PREMIUM plan can have their plan changed")
)
