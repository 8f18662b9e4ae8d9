package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

var (
	quantityRules = []validation.Rule{
		validation.Required,
		validation.Min(domain.MinRegistrationQuantity),
		validation.Max(domain.MaxRegistrationQuantity),
	}
	statusRule = validation.In(
		string(domain.StatusPending), string(domain.StatusConfirmed), string(domain.StatusCancelled), string(domain.StatusRefunded),
	)
)

type RegisterAttendeeRequest struct {
	EventID  uint `json:"eventId"`
	TicketID uint `json:"ticketId"`
	Quantity int  `json:"quantity"`
}

func (req *RegisterAttendeeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.TicketID, validation.Required),
		validation.Field(&req.Quantity, quantityRules...),
	)
}

type UpdateRegistrationRequest struct {
	Quantity int `json:"quantity"`
}

func (req *UpdateRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, quantityRules...),
	)
}

type RegistrationQuery struct {
	PageQuery
	Status string `form:"status"`
}

func (q *RegistrationQuery) Validate() error {
	if err := q.PageQuery.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(
		q,
		validation.Field(&q.Status, statusRule),
	)
}
