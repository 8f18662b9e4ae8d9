package request

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

const dateLayout = "2006-01-02"

var timeExp = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var errInvalidDate = errors.New("must be a valid ISO 8601 date")

var (
	categoryRule = validation.In(toInterfaces(domain.Categories)...)
	privacyRule  = validation.In(toInterfaces(domain.Privacies)...)
	dateRule     = validation.By(func(value interface{}) error {
		value, _ = validation.Indirect(value)
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, err := parseDate(s); err != nil {
			return errInvalidDate
		}

		return nil
	})
	timeRule = validation.Match(timeExp).Error("must be in HH:MM format")
)

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, s)
}

func toInterfaces[T ~string](values []T) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}

	return out
}

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Privacy     string `json:"privacy"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(10, 1000)),
		validation.Field(&req.Date, validation.Required, dateRule),
		validation.Field(&req.Time, validation.Required, timeRule),
		validation.Field(&req.Location, validation.Required, validation.Length(3, 200)),
		validation.Field(&req.Category, validation.Required, categoryRule),
		validation.Field(&req.Privacy, privacyRule),
	)
}

// ToDomain must only be called after Validate.
func (req *CreateEventRequest) ToDomain() domain.Event {
	date, _ := parseDate(req.Date)

	return domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		Location:    req.Location,
		Category:    domain.Category(req.Category),
		Privacy:     domain.Privacy(req.Privacy),
	}
}

type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Category    *string `json:"category"`
	Privacy     *string `json:"privacy"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(3, 100)),
		validation.Field(&req.Description, validation.NilOrNotEmpty, validation.Length(10, 1000)),
		validation.Field(&req.Date, validation.NilOrNotEmpty, dateRule),
		validation.Field(&req.Time, validation.NilOrNotEmpty, timeRule),
		validation.Field(&req.Location, validation.NilOrNotEmpty, validation.Length(3, 200)),
		validation.Field(&req.Category, validation.NilOrNotEmpty, categoryRule),
		validation.Field(&req.Privacy, validation.NilOrNotEmpty, privacyRule),
	)
}

func (req *UpdateEventRequest) ToDomain() domain.EventUpdate {
	update := domain.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		Time:        req.Time,
		Location:    req.Location,
	}
	if req.Date != nil {
		date, _ := parseDate(*req.Date)
		update.Date = &date
	}
	if req.Category != nil {
		c := domain.Category(*req.Category)
		update.Category = &c
	}
	if req.Privacy != nil {
		p := domain.Privacy(*req.Privacy)
		update.Privacy = &p
	}

	return update
}

type EventQuery struct {
	PageQuery
	Q        string `form:"q"`
	Category string `form:"category"`
	Location string `form:"location"`
	Date     string `form:"date"`
}

func (q *EventQuery) Validate() error {
	if err := q.PageQuery.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(
		q,
		validation.Field(&q.Q, validation.Length(2, 100)),
		validation.Field(&q.Category, categoryRule),
		validation.Field(&q.Location, validation.Length(2, 200)),
		validation.Field(&q.Date, dateRule),
	)
}

// ToFilter lists events on or after the given date.
func (q *EventQuery) ToFilter() domain.EventFilter {
	filter := domain.EventFilter{
		Query:    q.Q,
		Category: domain.Category(q.Category),
		Location: q.Location,
	}
	if q.Date != "" {
		if date, err := parseDate(q.Date); err == nil {
			filter.DateFrom = &date
		}
	}

	return filter
}
