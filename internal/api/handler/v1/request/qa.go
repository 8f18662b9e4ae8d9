package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

var qaStatusRule = validation.In(toInterfaces(domain.QAStatuses)...)

type AskQuestionRequest struct {
	EventID  uint   `json:"eventId"`
	Question string `json:"question"`
}

func (req *AskQuestionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.Question, validation.Required, validation.Length(5, 500)),
	)
}

type UpdateQuestionRequest struct {
	Question *string `json:"question"`
	Status   *string `json:"status"`
}

func (req *UpdateQuestionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Question, validation.NilOrNotEmpty, validation.Length(5, 500)),
		validation.Field(&req.Status, validation.NilOrNotEmpty, qaStatusRule),
	)
}

func (req *UpdateQuestionRequest) ToDomain() domain.QAUpdate {
	update := domain.QAUpdate{Question: req.Question}
	if req.Status != nil {
		s := domain.QAStatus(*req.Status)
		update.Status = &s
	}

	return update
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

func (req *AnswerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Answer, validation.Required, validation.Length(1, 1000)),
	)
}

type QAQuery struct {
	PageQuery
	Status string `form:"status"`
}

func (q *QAQuery) Validate() error {
	if err := q.PageQuery.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(
		q,
		validation.Field(&q.Status, qaStatusRule),
	)
}
