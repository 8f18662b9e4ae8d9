package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

func (req *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, append([]validation.Rule{validation.NilOrNotEmpty}, nameRules...)...),
		validation.Field(&req.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&req.Role, validation.NilOrNotEmpty,
			validation.In(string(domain.RoleUser), string(domain.RoleOrganizer), string(domain.RoleAdmin))),
	)
}

func (req *UpdateUserRequest) ToDomain() domain.UserUpdate {
	update := domain.UserUpdate{Name: req.Name, Email: req.Email}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		update.Role = &role
	}

	return update
}

type ListUsersQuery struct {
	PageQuery
	Role string `form:"role"`
}

func (q *ListUsersQuery) Validate() error {
	if err := q.PageQuery.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(
		q,
		validation.Field(&q.Role, validation.In(string(domain.RoleUser), string(domain.RoleOrganizer), string(domain.RoleAdmin))),
	)
}
