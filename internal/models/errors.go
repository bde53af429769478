package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrForbidden          = errors.New("models: forbidden")
	ErrValidation         = errors.New("models: validation failed")
	ErrInvalidTransition  = errors.New("models: invalid status transition")
	ErrAlreadyReviewed    = errors.New("models: work order already reviewed")
	ErrAlreadyResponded   = errors.New("models: company already responded to request")
	ErrResponseLimit      = errors.New("models: request already has its maximum number of responses")
	ErrUnauthorized       = errors.New("models: unauthorized")
	ErrMessageContext     = errors.New("models: message needs exactly one of request_id or work_order_id")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrWorkOrderNotFound  = errors.New("work order not found")
	ErrSessionNotFound    = errors.New("session not found")
)

// ValidationError carries a user-facing message for a rejected form field.
// Handlers surface Message verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }
