package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

var ticketTypeRule = validation.In(toInterfaces(domain.TicketTypes)...)

type CreateTicketRequest struct {
	EventID     uint     `json:"eventId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    int      `json:"quantity"`
	Type        string   `json:"type"`
}

func (req *CreateTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Description, validation.Length(0, 200)),
		validation.Field(&req.Price, validation.NotNil, validation.Min(0.0)),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&req.Type, ticketTypeRule),
	)
}

func (req *CreateTicketRequest) ToDomain() domain.Ticket {
	t := domain.Ticket{
		EventID:     req.EventID,
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Type:        domain.TicketType(req.Type),
	}
	if req.Price != nil {
		t.Price = *req.Price
	}

	return t
}

type UpdateTicketRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Type        *string  `json:"type"`
}

func (req *UpdateTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(2, 50)),
		validation.Field(&req.Description, validation.Length(0, 200)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.Quantity, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&req.Type, validation.NilOrNotEmpty, ticketTypeRule),
	)
}

func (req *UpdateTicketRequest) ToDomain() domain.TicketUpdate {
	update := domain.TicketUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
	if req.Type != nil {
		t := domain.TicketType(*req.Type)
		update.Type = &t
	}

	return update
}
