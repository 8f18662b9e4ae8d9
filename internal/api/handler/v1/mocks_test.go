package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/service"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetUser(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUsers) List(ctx context.Context, actor domain.User, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error) {
	args := m.Called(ctx, actor, filter, page)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUsers) Get(ctx context.Context, actor domain.User, id uint) (domain.User, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUsers) Update(ctx context.Context, actor domain.User, id uint, update domain.UserUpdate) (domain.User, error) {
	args := m.Called(ctx, actor, id, update)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUsers) Delete(ctx context.Context, actor domain.User, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockUsers) Events(ctx context.Context, actor domain.User, id uint, page domain.Page) ([]domain.Event, int64, error) {
	args := m.Called(ctx, actor, id, page)
	return args.Get(0).([]domain.Event), args.Get(1).(int64), args.Error(2)
}

func (m *mockUsers) Registrations(ctx context.Context, actor domain.User, id uint, page domain.Page) ([]domain.Registration, int64, error) {
	args := m.Called(ctx, actor, id, page)
	return args.Get(0).([]domain.Registration), args.Get(1).(int64), args.Error(2)
}

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Register(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (domain.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuth) GoogleLogin(ctx context.Context, idToken string) (domain.User, bool, error) {
	args := m.Called(ctx, idToken)
	return args.Get(0).(domain.User), args.Bool(1), args.Error(2)
}

func (m *mockAuth) Profile(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuth) UpdateProfile(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) Create(ctx context.Context, actor domain.User, event domain.Event) (domain.Event, error) {
	args := m.Called(ctx, actor, event)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEvents) List(ctx context.Context, viewer *domain.User, filter domain.EventFilter, page domain.Page) ([]domain.Event, int64, error) {
	args := m.Called(ctx, viewer, filter, page)
	return args.Get(0).([]domain.Event), args.Get(1).(int64), args.Error(2)
}

func (m *mockEvents) Get(ctx context.Context, viewer *domain.User, id uint) (domain.Event, error) {
	args := m.Called(ctx, viewer, id)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEvents) Update(ctx context.Context, actor domain.User, id uint, update domain.EventUpdate) (domain.Event, error) {
	args := m.Called(ctx, actor, id, update)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEvents) Delete(ctx context.Context, actor domain.User, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockEvents) MyEvents(ctx context.Context, actor domain.User, page domain.Page) ([]domain.Event, int64, error) {
	args := m.Called(ctx, actor, page)
	return args.Get(0).([]domain.Event), args.Get(1).(int64), args.Error(2)
}

func (m *mockEvents) Attendees(ctx context.Context, actor domain.User, id uint) ([]domain.Registration, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).([]domain.Registration), args.Error(1)
}

type mockRegistrations struct {
	mock.Mock
}

func (m *mockRegistrations) Register(ctx context.Context, actor domain.User, eventID, ticketID uint, quantity int) (domain.Registration, error) {
	args := m.Called(ctx, actor, eventID, ticketID, quantity)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrations) MyRegistrations(ctx context.Context, actor domain.User, filter domain.RegistrationFilter, page domain.Page) ([]domain.Registration, int64, error) {
	args := m.Called(ctx, actor, filter, page)
	return args.Get(0).([]domain.Registration), args.Get(1).(int64), args.Error(2)
}

func (m *mockRegistrations) ByEvent(ctx context.Context, actor domain.User, eventID uint) ([]domain.Registration, error) {
	args := m.Called(ctx, actor, eventID)
	return args.Get(0).([]domain.Registration), args.Error(1)
}

func (m *mockRegistrations) Get(ctx context.Context, actor domain.User, id uint) (domain.Registration, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrations) Update(ctx context.Context, actor domain.User, id uint, quantity int) (domain.Registration, error) {
	args := m.Called(ctx, actor, id, quantity)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrations) Cancel(ctx context.Context, actor domain.User, id uint) (domain.Registration, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(domain.Registration), args.Error(1)
}

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) Process(ctx context.Context, actor domain.User, req service.PaymentRequest) (domain.Registration, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockPayments) History(ctx context.Context, actor domain.User, status domain.RegistrationStatus, page domain.Page) ([]domain.Registration, int64, error) {
	args := m.Called(ctx, actor, status, page)
	return args.Get(0).([]domain.Registration), args.Get(1).(int64), args.Error(2)
}

func (m *mockPayments) Refund(ctx context.Context, actor domain.User, id uint, reason string) (domain.Registration, error) {
	args := m.Called(ctx, actor, id, reason)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockPayments) Details(ctx context.Context, actor domain.User, id uint) (domain.Registration, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(domain.Registration), args.Error(1)
}

type mockPolls struct {
	mock.Mock
}

func (m *mockPolls) Create(ctx context.Context, actor domain.User, poll domain.Poll) (domain.Poll, error) {
	args := m.Called(ctx, actor, poll)
	return args.Get(0).(domain.Poll), args.Error(1)
}

func (m *mockPolls) ListByEvent(ctx context.Context, viewer *domain.User, eventID uint) ([]domain.Poll, error) {
	args := m.Called(ctx, viewer, eventID)
	return args.Get(0).([]domain.Poll), args.Error(1)
}

func (m *mockPolls) Get(ctx context.Context, viewer *domain.User, id uint) (domain.Poll, error) {
	args := m.Called(ctx, viewer, id)
	return args.Get(0).(domain.Poll), args.Error(1)
}

func (m *mockPolls) Results(ctx context.Context, viewer *domain.User, id uint) (domain.PollResults, error) {
	args := m.Called(ctx, viewer, id)
	return args.Get(0).(domain.PollResults), args.Error(1)
}

func (m *mockPolls) Update(ctx context.Context, actor domain.User, id uint, update domain.PollUpdate) (domain.Poll, error) {
	args := m.Called(ctx, actor, id, update)
	return args.Get(0).(domain.Poll), args.Error(1)
}

func (m *mockPolls) Delete(ctx context.Context, actor domain.User, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockPolls) Vote(ctx context.Context, actor domain.User, id uint, option string) (domain.Poll, error) {
	args := m.Called(ctx, actor, id, option)
	return args.Get(0).(domain.Poll), args.Error(1)
}

type mockNotifications struct {
	mock.Mock
}

func (m *mockNotifications) Create(ctx context.Context, actor domain.User, n domain.Notification, targets []uint) ([]domain.Notification, error) {
	args := m.Called(ctx, actor, n, targets)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *mockNotifications) List(ctx context.Context, actor domain.User, filter domain.NotificationFilter, page domain.Page) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, actor, filter, page)
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotifications) UnreadCount(ctx context.Context, actor domain.User) (int64, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotifications) Get(ctx context.Context, actor domain.User, id uint) (domain.Notification, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(domain.Notification), args.Error(1)
}

func (m *mockNotifications) MarkRead(ctx context.Context, actor domain.User, id uint) (domain.Notification, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(domain.Notification), args.Error(1)
}

func (m *mockNotifications) MarkAllRead(ctx context.Context, actor domain.User) (int64, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotifications) Delete(ctx context.Context, actor domain.User, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}
