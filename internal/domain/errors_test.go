package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("s.repo.Create -> %w", InsufficientTickets(0))

	assert.ErrorIs(t, err, ErrInsufficientTickets)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrAlreadyRegistered)
	assert.NotErrorIs(t, err, ErrNotFound)

	var domainErr *Error
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Insufficient tickets", domainErr.Code)
	assert.Equal(t, "Only 0 tickets available", domainErr.Message)
}

func TestPaymentFailed(t *testing.T) {
	assert.Same(t, ErrPaymentFailed, PaymentFailed(""))

	err := PaymentFailed("card_declined")
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, "card_declined", err.Message)
}

func TestPage(t *testing.T) {
	p := NewPage(0, 100)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, MaxPageSize, p.Size)
	assert.Equal(t, 0, p.Offset())

	p = NewPage(3, 0)
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Equal(t, 20, p.Offset())

	assert.Equal(t, Pagination{CurrentPage: 3, TotalPages: 3, TotalItems: 21, ItemsPerPage: 10}, p.Paginate(21))
	assert.Equal(t, 0, p.Paginate(0).TotalPages)
}
