package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, role string) User {
	t.Helper()

	u, err := NewUserDAO(db).Insert(context.Background(), User{
		Name:     role,
		Email:    fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano()),
		Password: "hash",
		Role:     role,
	})
	require.NoError(t, err)

	return u
}

func seedEvent(t *testing.T, db *gorm.DB, organizer User, privacy string) Event {
	t.Helper()

	e, err := NewEventDAO(db).Insert(context.Background(), Event{
		Title:       "Go meetup",
		Description: "Talks about Go in production",
		Date:        time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
		Time:        "18:30",
		Location:    "Berlin",
		Category:    "conference",
		Privacy:     privacy,
		OrganizerID: organizer.ID,
	})
	require.NoError(t, err)

	return e
}

func seedTicket(t *testing.T, db *gorm.DB, event Event, quantity int, price float64) Ticket {
	t.Helper()

	tk, err := NewTicketDAO(db).Insert(context.Background(), Ticket{
		EventID:  event.ID,
		Name:     "General",
		Price:    price,
		Quantity: quantity,
		Type:     "regular",
	})
	require.NoError(t, err)

	return tk
}
