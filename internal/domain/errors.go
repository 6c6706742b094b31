package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Msg string
	Err error
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unauthorized access"
}

func (e UnauthorizedError) Unwrap() error { return e.Err }

type ForbiddenError struct {
	Msg string
	Err error
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "forbidden"
}

func (e ForbiddenError) Unwrap() error { return e.Err }

// InsufficientInventoryError is returned when a booking asks for more
// tickets than the listing currently has.
type InsufficientInventoryError struct {
	TicketID  int64
	Requested int
	Available int
}

func (e InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for ticket %d: requested %d, available %d",
		e.TicketID, e.Requested, e.Available)
}

// LimitExceededError is returned when flipping an advertise flag would push
// the advertised count past the global cap.
type LimitExceededError struct {
	Limit int
	Msg   string
}

func (e LimitExceededError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("limit of %d exceeded", e.Limit)
}

// PaymentIncompleteError is returned when the gateway reports a checkout
// session that has not been paid yet.
type PaymentIncompleteError struct {
	SessionID string
}

func (e PaymentIncompleteError) Error() string {
	return fmt.Sprintf("payment for session %s is not completed", e.SessionID)
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsInsufficientInventory(err error) bool {
	var target InsufficientInventoryError
	return errors.As(err, &target)
}

func IsLimitExceeded(err error) bool {
	var target LimitExceededError
	return errors.As(err, &target)
}

func IsPaymentIncomplete(err error) bool {
	var target PaymentIncompleteError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}
