package dao

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserEmailExists      = errors.New("user already exists")
	ErrEventNotFound        = errors.New("event not found")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrTicketOversold       = errors.New("quantity is below the tickets already sold")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrRegistrationExists   = errors.New("active registration already exists")
	ErrRegistrationInactive = errors.New("registration is not active")
	ErrPostNotFound         = errors.New("post not found")
	ErrPollNotFound         = errors.New("poll not found")
	ErrPollInactive         = errors.New("poll is not active")
	ErrPollOptionInvalid    = errors.New("option is not part of the poll")
	ErrPollVoteExists       = errors.New("vote already exists")
	ErrQANotFound           = errors.New("question not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// InsufficientTicketsError is returned when a ticket cannot cover a
// requested quantity.
type InsufficientTicketsError struct {
	Available int
}

func (e *InsufficientTicketsError) Error() string {
	return fmt.Sprintf("only %d tickets available", e.Available)
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}

	return constraint == "" || pgErr.ConstraintName == constraint
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
