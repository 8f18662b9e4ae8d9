package dao

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationDAO_InsertWithinCapacity(t *testing.T) {
	db := freshDB(t)
	ctx := context.Background()
	d := NewRegistrationDAO(db)

	organizer := seedUser(t, db, "organizer")
	alice := seedUser(t, db, "user")
	bob := seedUser(t, db, "user")
	event := seedEvent(t, db, organizer, "public")
	ticket := seedTicket(t, db, event, 2, 25)

	reg, err := d.InsertWithinCapacity(ctx, Registration{
		EventID: event.ID, TicketID: ticket.ID, UserID: alice.ID,
		Quantity: 2, TotalAmount: 50, Status: statusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, reg.User.ID)
	assert.Equal(t, event.Title, reg.Event.Title)

	sold, err := NewTicketDAO(db).SoldQuantity(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sold)

	_, err = d.InsertWithinCapacity(ctx, Registration{
		EventID: event.ID, TicketID: ticket.ID, UserID: bob.ID,
		Quantity: 1, TotalAmount: 25, Status: statusConfirmed,
	})
	var insufficient *InsufficientTicketsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 0, insufficient.Available)

	_, err = d.InsertWithinCapacity(ctx, Registration{
		EventID: event.ID, TicketID: ticket.ID, UserID: alice.ID,
		Quantity: 1, TotalAmount: 25, Status: statusConfirmed,
	})
	assert.ErrorIs(t, err, ErrRegistrationExists)

	_, err = d.Cancel(ctx, reg.ID)
	require.NoError(t, err)

	sold, err = NewTicketDAO(db).SoldQuantity(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, sold)

	_, err = d.InsertWithinCapacity(ctx, Registration{
		EventID: event.ID, TicketID: ticket.ID, UserID: bob.ID,
		Quantity: 1, TotalAmount: 25, Status: statusConfirmed,
	})
	assert.NoError(t, err)

	_, err = d.Cancel(ctx, reg.ID)
	assert.ErrorIs(t, err, ErrRegistrationInactive)
}

func TestRegistrationDAO_TicketFromOtherEvent(t *testing.T) {
	db := freshDB(t)
	organizer := seedUser(t, db, "organizer")
	user := seedUser(t, db, "user")
	event := seedEvent(t, db, organizer, "public")
	other := seedEvent(t, db, organizer, "public")
	ticket := seedTicket(t, db, other, 5, 0)

	_, err := NewRegistrationDAO(db).InsertWithinCapacity(context.Background(), Registration{
		EventID: event.ID, TicketID: ticket.ID, UserID: user.ID, Quantity: 1, Status: statusConfirmed,
	})
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestRegistrationDAO_UpdateQuantity(t *testing.T) {
	db := freshDB(t)
	ctx := context.Background()
	d := NewRegistrationDAO(db)

	organizer := seedUser(t, db, "organizer")
	alice := seedUser(t, db, "user")
	bob := seedUser(t, db, "user")
	event := seedEvent(t, db, organizer, "public")
	ticket := seedTicket(t, db, event, 5, 10)

	a, err := d.InsertWithinCapacity(ctx, Registration{EventID: event.ID, TicketID: ticket.ID, UserID: alice.ID, Quantity: 3, TotalAmount: 30, Status: statusConfirmed})
	require.NoError(t, err)
	_, err = d.InsertWithinCapacity(ctx, Registration{EventID: event.ID, TicketID: ticket.ID, UserID: bob.ID, Quantity: 1, TotalAmount: 10, Status: statusConfirmed})
	require.NoError(t, err)

	updated, err := d.UpdateQuantity(ctx, a.ID, 4, 40)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, 40.0, updated.TotalAmount)

	_, err = d.UpdateQuantity(ctx, a.ID, 5, 50)
	var insufficient *InsufficientTicketsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 4, insufficient.Available)
}

func TestRegistrationDAO_PaymentLifecycle(t *testing.T) {
	db := freshDB(t)
	ctx := context.Background()
	d := NewRegistrationDAO(db)

	organizer := seedUser(t, db, "organizer")
	user := seedUser(t, db, "user")
	event := seedEvent(t, db, organizer, "public")
	ticket := seedTicket(t, db, event, 1, 99)

	pending, err := d.InsertWithinCapacity(ctx, Registration{EventID: event.ID, TicketID: ticket.ID, UserID: user.ID, Quantity: 1, TotalAmount: 99, Status: statusPending})
	require.NoError(t, err)

	confirmed, err := d.ConfirmPayment(ctx, pending.ID, "credit_card", "pay_1")
	require.NoError(t, err)
	assert.Equal(t, statusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.PaymentID)
	assert.Equal(t, "pay_1", *confirmed.PaymentID)

	refunded, err := NewRegistrationDAO(db).MarkRefunded(ctx, pending.ID, "changed plans", confirmed.UpdatedAt)
	require.NoError(t, err)
	assert.Equal(t, statusRefunded, refunded.Status)

	_, err = d.MarkRefunded(ctx, pending.ID, "again", confirmed.UpdatedAt)
	assert.ErrorIs(t, err, ErrRegistrationInactive)

	sold, err := NewTicketDAO(db).SoldQuantity(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, sold)

	// A refunded registration still blocks a second one for the same event.
	_, err = d.InsertWithinCapacity(ctx, Registration{EventID: event.ID, TicketID: ticket.ID, UserID: user.ID, Quantity: 1, Status: statusConfirmed})
	assert.ErrorIs(t, err, ErrRegistrationExists)

	other := seedUser(t, db, "user")
	failed, err := d.InsertWithinCapacity(ctx, Registration{EventID: event.ID, TicketID: ticket.ID, UserID: other.ID, Quantity: 1, Status: statusPending})
	require.NoError(t, err)
	require.NoError(t, d.DeletePending(ctx, failed.ID))
	_, err = d.FindByID(ctx, failed.ID)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestRegistrationDAO_ConcurrentRegistrationsNeverOversell(t *testing.T) {
	db := freshDB(t)
	ctx := context.Background()
	d := NewRegistrationDAO(db)

	organizer := seedUser(t, db, "organizer")
	event := seedEvent(t, db, organizer, "public")
	const capacity = 5
	ticket := seedTicket(t, db, event, capacity, 1)

	const attempts = 20
	users := make([]User, attempts)
	for i := range users {
		users[i] = seedUser(t, db, "user")
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(u User) {
			defer wg.Done()
			_, err := d.InsertWithinCapacity(ctx, Registration{
				EventID: event.ID, TicketID: ticket.ID, UserID: u.ID,
				Quantity: 1, TotalAmount: 1, Status: statusConfirmed,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(users[i])
	}
	wg.Wait()

	assert.Equal(t, capacity, succeeded)

	sold, err := NewTicketDAO(db).SoldQuantity(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, capacity, sold)
}

func TestRegistrationDAO_ConcurrentDuplicatesForOneUser(t *testing.T) {
	db := freshDB(t)
	ctx := context.Background()
	d := NewRegistrationDAO(db)

	organizer := seedUser(t, db, "organizer")
	user := seedUser(t, db, "user")
	event := seedEvent(t, db, organizer, "public")
	tickets := []Ticket{seedTicket(t, db, event, 10, 1), seedTicket(t, db, event, 10, 2)}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(tk Ticket) {
			defer wg.Done()
			_, err := d.InsertWithinCapacity(ctx, Registration{
				EventID: event.ID, TicketID: tk.ID, UserID: user.ID,
				Quantity: 1, TotalAmount: tk.Price, Status: statusConfirmed,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(tickets[i%2])
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}
