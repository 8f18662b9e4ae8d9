package domain

import "time"

type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "pending"
	StatusConfirmed RegistrationStatus = "confirmed"
	StatusCancelled RegistrationStatus = "cancelled"
	StatusRefunded  RegistrationStatus = "refunded"
)

// Active registrations hold ticket capacity.
func (s RegistrationStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

const (
	MinRegistrationQuantity = 1
	MaxRegistrationQuantity = 10
)

type Registration struct {
	ID            uint               `json:"id"`
	EventID       uint               `json:"eventId"`
	TicketID      uint               `json:"ticketId"`
	UserID        uint               `json:"userId"`
	Quantity      int                `json:"quantity"`
	TotalAmount   float64            `json:"totalAmount"`
	Status        RegistrationStatus `json:"status"`
	PaymentMethod string             `json:"paymentMethod,omitempty"`
	PaymentID     string             `json:"paymentId,omitempty"`
	RefundReason  string             `json:"refundReason,omitempty"`
	RefundedAt    *time.Time         `json:"refundedAt,omitempty"`
	Event         *EventRef          `json:"event,omitempty"`
	Ticket        *TicketRef         `json:"ticket,omitempty"`
	User          *UserRef           `json:"user,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// Refundable reports whether the registration is confirmed. Registrations
// made without the payment flow are refundable too; they have no charge to
// reverse.
func (r Registration) Refundable() bool {
	return r.Status == StatusConfirmed
}

type RegistrationFilter struct {
	Status RegistrationStatus
	// PaidOnly keeps registrations that went through the payment flow.
	PaidOnly bool
}
