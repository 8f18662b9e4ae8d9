package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

var notificationTypeRule = validation.In(toInterfaces(domain.NotificationTypes)...)

type CreateNotificationRequest struct {
	EventID     uint   `json:"eventId"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Type        string `json:"type"`
	TargetUsers []uint `json:"targetUsers"`
}

func (req *CreateNotificationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Message, validation.Required, validation.Length(1, 1000)),
		validation.Field(&req.Type, notificationTypeRule),
	)
}

func (req *CreateNotificationRequest) ToDomain() domain.Notification {
	return domain.Notification{
		EventID: req.EventID,
		Title:   req.Title,
		Message: req.Message,
		Type:    domain.NotificationType(req.Type),
	}
}

type NotificationQuery struct {
	PageQuery
	IsRead *bool  `form:"isRead"`
	Type   string `form:"type"`
}

func (q *NotificationQuery) Validate() error {
	if err := q.PageQuery.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(
		q,
		validation.Field(&q.Type, notificationTypeRule),
	)
}

func (q *NotificationQuery) ToFilter() domain.NotificationFilter {
	return domain.NotificationFilter{
		IsRead: q.IsRead,
		Type:   domain.NotificationType(q.Type),
	}
}
