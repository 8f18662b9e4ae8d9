package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

var contentRules = []validation.Rule{validation.Required, validation.Length(10, 1000)}

type CreatePostRequest struct {
	EventID uint   `json:"eventId"`
	Content string `json:"content"`
}

func (req *CreatePostRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.Content, contentRules...),
	)
}

// PostContentRequest is used for both replies and edits.
type PostContentRequest struct {
	Content string `json:"content"`
}

func (req *PostContentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Content, contentRules...),
	)
}
