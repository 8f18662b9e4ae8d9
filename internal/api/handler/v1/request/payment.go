package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

var paymentMethods = []interface{}{"stripe", "paypal", "credit_card"}

type ProcessPaymentRequest struct {
	EventID       uint   `json:"eventId"`
	TicketID      uint   `json:"ticketId"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentToken  string `json:"paymentToken"`
}

func (req *ProcessPaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.TicketID, validation.Required),
		validation.Field(&req.Quantity, quantityRules...),
		validation.Field(&req.PaymentMethod, validation.Required, validation.In(paymentMethods...)),
		validation.Field(&req.PaymentToken, validation.Required),
	)
}

type RefundRequest struct {
	Reason string `json:"reason"`
}

func (req *RefundRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}
