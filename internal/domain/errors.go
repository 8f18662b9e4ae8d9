package domain

import (
	"errors"
	"fmt"
)

// Kinds of failure. Every *Error unwraps to exactly one of them and the HTTP
// layer picks the status code from it.
var (
	ErrInvalid      = errors.New("invalid")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error is a failure that is safe to show to API clients.
type Error struct {
	Kind    error
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Is matches any *Error with the same Code, so errors built by the
// constructors below still match their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

func newError(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrValidation         = newError(ErrInvalid, "Validation failed", "Please check your input data")
	ErrInvalidCredentials = newError(ErrUnauthorized, "Invalid credentials", "Email or password is incorrect")
	ErrEmailExists        = newError(ErrConflict, "Email already exists", "A user with this email already exists")
	ErrAccessDenied       = newError(ErrForbidden, "Access denied", "You do not have permission to perform this action")
	ErrRoleChangeDenied   = newError(ErrForbidden, "Access denied", "Only admins can change user roles")
	ErrCannotDeleteSelf   = newError(ErrInvalid, "Cannot delete self", "You cannot delete your own account")
	ErrInvalidToken       = newError(ErrUnauthorized, "Invalid token", "The provided token is invalid or expired")
	ErrGoogleIDMismatch   = newError(ErrConflict, "Account already linked", "This email is linked to a different Google account")

	ErrUserNotFound         = newError(ErrNotFound, "User not found", "The specified user does not exist")
	ErrEventNotFound        = newError(ErrNotFound, "Event not found", "The specified event does not exist")
	ErrTicketNotFound       = newError(ErrNotFound, "Ticket not found", "The specified ticket does not exist for this event")
	ErrRegistrationNotFound = newError(ErrNotFound, "Registration not found", "The specified registration does not exist")
	ErrPostNotFound         = newError(ErrNotFound, "Post not found", "The specified forum post does not exist")
	ErrPollNotFound         = newError(ErrNotFound, "Poll not found", "The specified poll does not exist")
	ErrQANotFound           = newError(ErrNotFound, "Question not found", "The specified question does not exist")
	ErrNotificationNotFound = newError(ErrNotFound, "Notification not found", "The specified notification does not exist")

	ErrAlreadyRegistered   = newError(ErrConflict, "Already registered", "You are already registered for this event")
	ErrInsufficientTickets = newError(ErrConflict, "Insufficient tickets", "Not enough tickets available")
	ErrTicketOversold      = newError(ErrConflict, "Invalid quantity", "Ticket quantity cannot be lower than the number of tickets already sold")
	ErrRegistrationClosed  = newError(ErrInvalid, "Registration not active", "This registration has already been cancelled or refunded")
	ErrRefundNotEligible   = newError(ErrInvalid, "Refund not eligible", "This registration is not eligible for refund")
	ErrPaymentFailed       = newError(ErrInvalid, "Payment failed", "The payment could not be processed")
	ErrRefundFailed        = newError(ErrInvalid, "Refund failed", "The refund could not be processed")

	ErrPollInactive  = newError(ErrInvalid, "Poll is not active", "This poll is not accepting votes")
	ErrInvalidOption = newError(ErrInvalid, "Invalid option", "The selected option is not valid for this poll")
	ErrAlreadyVoted  = newError(ErrConflict, "Already voted", "You have already voted on this poll")

	ErrInvalidTransition = newError(ErrInvalid, "Invalid status", "The requested status change is not allowed")
)

// InsufficientTickets reports how many units are still available.
func InsufficientTickets(available int) *Error {
	return newError(ErrConflict, ErrInsufficientTickets.Code, fmt.Sprintf("Only %d tickets available", available))
}

// PaymentFailed keeps the gateway's decline reason.
func PaymentFailed(reason string) *Error {
	if reason == "" {
		return ErrPaymentFailed
	}

	return newError(ErrInvalid, ErrPaymentFailed.Code, reason)
}
