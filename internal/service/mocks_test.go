package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/pkg/googleauth"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/pkg/payment"
)

type mockGoogleVerifier struct {
	mock.Mock
}

func (m *mockGoogleVerifier) Verify(ctx context.Context, idToken string) (googleauth.Identity, error) {
	args := m.Called(ctx, idToken)
	return args.Get(0).(googleauth.Identity), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByGoogleID(ctx context.Context, googleID string) (domain.User, error) {
	args := m.Called(ctx, googleID)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) LinkGoogleID(ctx context.Context, id uint, googleID string) (domain.User, error) {
	args := m.Called(ctx, id, googleID)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) Update(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) FindAll(ctx context.Context, filter domain.EventFilter, page domain.Page) ([]domain.Event, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Event), args.Get(1).(int64), args.Error(2)
}

func (m *mockEventRepo) Update(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockTicketRepo struct {
	mock.Mock
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	args := m.Called(ctx, ticket)
	return args.Get(0).(domain.Ticket), args.Error(1)
}

func (m *mockTicketRepo) FindByID(ctx context.Context, id uint) (domain.Ticket, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Ticket), args.Error(1)
}

func (m *mockTicketRepo) FindByEventID(ctx context.Context, eventID uint) ([]domain.Ticket, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *mockTicketRepo) Update(ctx context.Context, id uint, update domain.TicketUpdate) (domain.Ticket, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.Ticket), args.Error(1)
}

func (m *mockTicketRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTicketRepo) SoldQuantity(ctx context.Context, id uint) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type mockRegistrationRepo struct {
	mock.Mock
}

func (m *mockRegistrationRepo) Reserve(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	args := m.Called(ctx, reg)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) UpdateQuantity(ctx context.Context, id uint, quantity int, totalAmount float64) (domain.Registration, error) {
	args := m.Called(ctx, id, quantity, totalAmount)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) FindByID(ctx context.Context, id uint) (domain.Registration, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) FindByUser(ctx context.Context, userID uint, filter domain.RegistrationFilter, page domain.Page) ([]domain.Registration, int64, error) {
	args := m.Called(ctx, userID, filter, page)
	return args.Get(0).([]domain.Registration), args.Get(1).(int64), args.Error(2)
}

func (m *mockRegistrationRepo) FindByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) Cancel(ctx context.Context, id uint) (domain.Registration, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) ConfirmPayment(ctx context.Context, id uint, method, paymentID string) (domain.Registration, error) {
	args := m.Called(ctx, id, method, paymentID)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) MarkRefunded(ctx context.Context, id uint, reason string, at time.Time) (domain.Registration, error) {
	args := m.Called(ctx, id, reason, at)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationRepo) ReleasePending(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockForumRepo struct {
	mock.Mock
}

func (m *mockForumRepo) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(domain.Post), args.Error(1)
}

func (m *mockForumRepo) FindByID(ctx context.Context, id uint) (domain.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Post), args.Error(1)
}

func (m *mockForumRepo) FindThreadsByEvent(ctx context.Context, eventID uint, page domain.Page) ([]domain.Post, int64, error) {
	args := m.Called(ctx, eventID, page)
	return args.Get(0).([]domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockForumRepo) FindByUser(ctx context.Context, userID uint, page domain.Page) ([]domain.Post, int64, error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).([]domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockForumRepo) UpdateContent(ctx context.Context, id uint, content string) (domain.Post, error) {
	args := m.Called(ctx, id, content)
	return args.Get(0).(domain.Post), args.Error(1)
}

func (m *mockForumRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockPollRepo struct {
	mock.Mock
}

func (m *mockPollRepo) Create(ctx context.Context, poll domain.Poll) (domain.Poll, error) {
	args := m.Called(ctx, poll)
	return args.Get(0).(domain.Poll), args.Error(1)
}

func (m *mockPollRepo) FindByID(ctx context.Context, id uint) (domain.Poll, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Poll), args.Error(1)
}

func (m *mockPollRepo) FindByEvent(ctx context.Context, eventID uint) ([]domain.Poll, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Poll), args.Error(1)
}

func (m *mockPollRepo) Update(ctx context.Context, id uint, update domain.PollUpdate) (domain.Poll, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.Poll), args.Error(1)
}

func (m *mockPollRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPollRepo) Vote(ctx context.Context, pollID, userID uint, option string) (domain.Poll, error) {
	args := m.Called(ctx, pollID, userID, option)
	return args.Get(0).(domain.Poll), args.Error(1)
}

type mockQARepo struct {
	mock.Mock
}

func (m *mockQARepo) Create(ctx context.Context, qa domain.QA) (domain.QA, error) {
	args := m.Called(ctx, qa)
	return args.Get(0).(domain.QA), args.Error(1)
}

func (m *mockQARepo) FindByID(ctx context.Context, id uint) (domain.QA, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.QA), args.Error(1)
}

func (m *mockQARepo) FindByEvent(ctx context.Context, eventID uint, filter domain.QAFilter, page domain.Page) ([]domain.QA, int64, error) {
	args := m.Called(ctx, eventID, filter, page)
	return args.Get(0).([]domain.QA), args.Get(1).(int64), args.Error(2)
}

func (m *mockQARepo) FindByUser(ctx context.Context, userID uint, page domain.Page) ([]domain.QA, int64, error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).([]domain.QA), args.Get(1).(int64), args.Error(2)
}

func (m *mockQARepo) Update(ctx context.Context, id uint, update domain.QAUpdate) (domain.QA, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.QA), args.Error(1)
}

func (m *mockQARepo) Answer(ctx context.Context, id, answererID uint, answer string, at time.Time) (domain.QA, error) {
	args := m.Called(ctx, id, answererID, answer, at)
	return args.Get(0).(domain.QA), args.Error(1)
}

func (m *mockQARepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) CreateBatch(ctx context.Context, notifications []domain.Notification) ([]domain.Notification, error) {
	args := m.Called(ctx, notifications)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *mockNotificationRepo) FindByID(ctx context.Context, id uint) (domain.Notification, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Notification), args.Error(1)
}

func (m *mockNotificationRepo) FindForUser(ctx context.Context, userID uint, filter domain.NotificationFilter, page domain.Page) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, filter, page)
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id uint) (domain.Notification, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Notification), args.Error(1)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Charge(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.ChargeResult), args.Error(1)
}

func (m *mockGateway) Refund(ctx context.Context, paymentID string, amount float64) (payment.RefundResult, error) {
	args := m.Called(ctx, paymentID, amount)
	return args.Get(0).(payment.RefundResult), args.Error(1)
}

var (
	admin     = domain.User{ID: 1, Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	organizer = domain.User{ID: 2, Name: "Olivia", Email: "olivia@example.com", Role: domain.RoleOrganizer}
	alice     = domain.User{ID: 3, Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}
	bob       = domain.User{ID: 4, Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser}
)

func publicEvent() domain.Event {
	return domain.Event{ID: 10, Title: "Go Meetup", OrganizerID: organizer.ID, Privacy: domain.PrivacyPublic}
}

func privateEvent() domain.Event {
	return domain.Event{ID: 11, Title: "Board Meeting", OrganizerID: organizer.ID, Privacy: domain.PrivacyPrivate}
}
