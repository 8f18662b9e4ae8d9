package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

// PageQuery reads ?page= and ?limit=. Missing values fall back to defaults.
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (q *PageQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.Page, validation.Min(1)),
		validation.Field(&q.Limit, validation.Min(1), validation.Max(domain.MaxPageSize)),
	)
}

func (q PageQuery) ToPage() domain.Page {
	return domain.NewPage(q.Page, q.Limit)
}
