package models

import (
	"errors"
	"fmt"
)

// Base errors for the error taxonomy. Every error the engine returns
// wraps exactly one of these, so that the HTTP layer can translate them
// uniformly.
var (
	// ErrGeneral is returned when an unexpected failure cannot be
	// described more precisely. The underlying cause is logged, never
	// surfaced.
	ErrGeneral = errors.New("an error occurred on the server during your request, please contact your server administrator")

	// ErrResourceNotFound is returned when a resource does not exist or
	// does not belong to the requesting user. The two cases are
	// deliberately indistinguishable.
	ErrResourceNotFound = errors.New("there is no")

	// ErrStateConflict is returned when a request conflicts with prior
	// or concurrent state rather than with its own input.
	ErrStateConflict = errors.New("conflict")

	// ErrNotAuthorized is returned for every privilege failure. The
	// message is fixed and carries no detail about the boundary.
	ErrNotAuthorized = errors.New("you are not allowed to perform this action")
)

// State conflicts
var (
	ErrMonthClosed        = fmt.Errorf("%w: this month is closed and can no longer be modified", ErrStateConflict)
	ErrMonthAlreadyClosed = fmt.Errorf("%w: this month has already been closed", ErrStateConflict)
	ErrEmailTaken         = fmt.Errorf("%w: a user with this email already exists", ErrStateConflict)
	ErrCompanyNameTaken   = fmt.Errorf("%w: a company with this name already exists", ErrStateConflict)
	ErrOwnerLimitReached  = fmt.Errorf("%w: the maximum number of owner accounts has been reached", ErrStateConflict)
)

// Validation errors
var (
	ErrEmailInvalid       = errors.New("the email address is not valid")
	ErrNameRequired       = errors.New("the name must not be empty")
	ErrCategoryRequired   = errors.New("the category must not be empty")
	ErrConceptRequired    = errors.New("the concept must not be empty")
	ErrCreditorRequired   = errors.New("the creditor must not be empty")
	ErrClockOrder         = errors.New("the clock-in time must be before the clock-out time")
	ErrBreakNegative      = errors.New("the break duration must not be negative")
	ErrHoursNegative      = errors.New("worked hours must not be negative")
	ErrWithholdingInvalid = errors.New("the withholding percentage must be between 0 and 100")
	ErrRoleInvalid        = errors.New("the specified role does not exist")
)
