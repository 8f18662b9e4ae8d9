package request

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

func strPtr(s string) *string { return &s }

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)

	return errs
}

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		invalid []string
	}{
		{
			name: "valid",
			req:  RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"},
		},
		{
			name:    "password without digit",
			req:     RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secretpw"},
			invalid: []string{"password"},
		},
		{
			name:    "short name and bad email",
			req:     RegisterRequest{Name: "A", Email: "nope", Password: "secret1"},
			invalid: []string{"name", "email"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.invalid) == 0 {
				assert.NoError(t, err)
				return
			}

			errs := fieldErrors(t, err)
			for _, field := range tt.invalid {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestCreateEventRequest(t *testing.T) {
	req := CreateEventRequest{
		Title:       "Go Meetup",
		Description: "Monthly gathering of gophers",
		Date:        "2026-12-01",
		Time:        "18:30",
		Location:    "Paris",
		Category:    "workshop",
	}
	require.NoError(t, req.Validate())

	event := req.ToDomain()
	assert.Equal(t, 2026, event.Date.Year())
	assert.Equal(t, domain.CategoryWorkshop, event.Category)

	req.Date = "2026-12-01T18:30:00Z"
	assert.NoError(t, req.Validate())

	req.Date = "tomorrow"
	req.Time = "25:00"
	req.Category = "party"
	errs := fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "date")
	assert.Contains(t, errs, "time")
	assert.Contains(t, errs, "category")
}

func TestUpdateEventRequest(t *testing.T) {
	req := UpdateEventRequest{Date: strPtr("not-a-date")}
	errs := fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "date")

	req = UpdateEventRequest{Privacy: strPtr("private"), Date: strPtr("2026-05-04")}
	require.NoError(t, req.Validate())

	update := req.ToDomain()
	require.NotNil(t, update.Privacy)
	assert.Equal(t, domain.PrivacyPrivate, *update.Privacy)
	require.NotNil(t, update.Date)
	assert.Equal(t, 4, update.Date.Day())
	assert.Nil(t, update.Title)
}

func TestEventQuery(t *testing.T) {
	q := EventQuery{Q: "go", Date: "2026-01-01"}
	require.NoError(t, q.Validate())
	filter := q.ToFilter()
	assert.Equal(t, "go", filter.Query)
	require.NotNil(t, filter.DateFrom)

	q = EventQuery{PageQuery: PageQuery{Limit: domain.MaxPageSize + 1}}
	assert.Error(t, q.Validate())
}

func TestCreateTicketRequest(t *testing.T) {
	req := CreateTicketRequest{EventID: 1, Name: "VIP", Quantity: 10}
	errs := fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "price")

	free := 0.0
	req.Price = &free
	assert.NoError(t, req.Validate())

	negative := -5.0
	req.Price = &negative
	errs = fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "price")
}

func TestRegistrationQuantity(t *testing.T) {
	req := RegisterAttendeeRequest{EventID: 1, TicketID: 2, Quantity: 11}
	errs := fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "quantity")

	req.Quantity = 10
	assert.NoError(t, req.Validate())
}

func TestProcessPaymentRequest(t *testing.T) {
	req := ProcessPaymentRequest{EventID: 1, TicketID: 2, Quantity: 1, PaymentMethod: "cash", PaymentToken: "tok"}
	errs := fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "paymentMethod")

	req.PaymentMethod = "paypal"
	assert.NoError(t, req.Validate())
}

func TestCreatePollRequest(t *testing.T) {
	req := CreatePollRequest{EventID: 1, Question: "Which day?", Options: []string{"Monday"}}
	errs := fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "options")

	req.Options = []string{"Monday", ""}
	errs = fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "options")

	req.Options = []string{"Monday", "Friday"}
	assert.NoError(t, req.Validate())
}

func TestUpdateQuestionRequest(t *testing.T) {
	req := UpdateQuestionRequest{Status: strPtr("closed")}
	errs := fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "status")

	req.Status = strPtr("rejected")
	require.NoError(t, req.Validate())
	assert.Equal(t, domain.QARejected, *req.ToDomain().Status)
}

func TestCreateNotificationRequest(t *testing.T) {
	req := CreateNotificationRequest{EventID: 1, Title: "Heads up", Message: "Doors open at 6", Type: "urgent"}
	errs := fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "type")

	req.Type = ""
	assert.NoError(t, req.Validate())
}
