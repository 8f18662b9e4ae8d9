package request

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

var errInvalidOptions = errors.New("each option must be between 1 and 100 characters")

var optionsRule = validation.By(func(value interface{}) error {
	options, _ := value.([]string)
	for _, o := range options {
		if n := len([]rune(strings.TrimSpace(o))); n < 1 || n > 100 {
			return errInvalidOptions
		}
	}

	return nil
})

type CreatePollRequest struct {
	EventID  uint     `json:"eventId"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func (req *CreatePollRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.Question, validation.Required, validation.Length(5, 200)),
		validation.Field(&req.Options,
			validation.Required,
			validation.Length(domain.MinPollOptions, domain.MaxPollOptions),
			optionsRule,
		),
	)
}

func (req *CreatePollRequest) ToDomain() domain.Poll {
	return domain.Poll{
		EventID:  req.EventID,
		Question: req.Question,
		Options:  req.Options,
	}
}

type UpdatePollRequest struct {
	Question *string  `json:"question"`
	Options  []string `json:"options"`
	IsActive *bool    `json:"isActive"`
}

func (req *UpdatePollRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Question, validation.NilOrNotEmpty, validation.Length(5, 200)),
		validation.Field(&req.Options, validation.Length(domain.MinPollOptions, domain.MaxPollOptions), optionsRule),
	)
}

func (req *UpdatePollRequest) ToDomain() domain.PollUpdate {
	return domain.PollUpdate{
		Question: req.Question,
		Options:  req.Options,
		IsActive: req.IsActive,
	}
}

type VoteRequest struct {
	Option string `json:"option"`
}

func (req *VoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Option, validation.Required),
	)
}
