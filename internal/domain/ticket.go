package domain

import "time"

type TicketType string

const (
	TicketRegular   TicketType = "regular"
	TicketVIP       TicketType = "vip"
	TicketEarlyBird TicketType = "early-bird"
	TicketStudent   TicketType = "student"
	TicketSenior    TicketType = "senior"
)

var TicketTypes = []TicketType{TicketRegular, TicketVIP, TicketEarlyBird, TicketStudent, TicketSenior}

type Ticket struct {
	ID          uint       `json:"id"`
	EventID     uint       `json:"eventId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	Type        TicketType `json:"type"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t Ticket) Ref() *TicketRef {
	return &TicketRef{ID: t.ID, Name: t.Name, Price: t.Price, Type: t.Type}
}

type TicketRef struct {
	ID    uint       `json:"id"`
	Name  string     `json:"name"`
	Price float64    `json:"price"`
	Type  TicketType `json:"type"`
}

type TicketUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	Type        *TicketType
}

// Availability is computed from active registrations only.
type Availability struct {
	TicketID  uint `json:"ticketId"`
	Total     int  `json:"totalTickets"`
	Sold      int  `json:"soldTickets"`
	Available int  `json:"availableTickets"`
}

func NewAvailability(t Ticket, sold int) Availability {
	available := t.Quantity - sold
	if available < 0 {
		available = 0
	}

	return Availability{TicketID: t.ID, Total: t.Quantity, Sold: sold, Available: available}
}
