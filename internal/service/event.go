package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context, filter domain.EventFilter, page domain.Page) ([]domain.Event, int64, error)
	Update(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
}

// EventFinder is the read access other services need to check ownership and
// visibility of the event a resource belongs to.
type EventFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type EventRegistrationFinder interface {
	FindByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error)
}

type EventService struct {
	repo EventRepository
	regs EventRegistrationFinder
}

func NewEventService(repo EventRepository, regs EventRegistrationFinder) *EventService {
	return &EventService{
		repo: repo,
		regs: regs,
	}
}

func (s *EventService) Create(ctx context.Context, actor domain.User, event domain.Event) (domain.Event, error) {
	if !actor.Role.AtLeast(domain.RoleOrganizer) {
		return domain.Event{}, domain.ErrAccessDenied
	}
	event.OrganizerID = actor.ID
	if event.Privacy == "" {
		event.Privacy = domain.PrivacyPublic
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// List applies the viewer's visibility to the filter. A nil viewer only sees
// public events.
func (s *EventService) List(ctx context.Context, viewer *domain.User, filter domain.EventFilter, page domain.Page) ([]domain.Event, int64, error) {
	filter.Viewer = viewer

	events, total, err := s.repo.FindAll(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, total, nil
}

func (s *EventService) Get(ctx context.Context, viewer *domain.User, id uint) (domain.Event, error) {
	return visibleEvent(ctx, s.repo, viewer, id)
}

func (s *EventService) Update(ctx context.Context, actor domain.User, id uint, update domain.EventUpdate) (domain.Event, error) {
	if _, err := ownedEvent(ctx, s.repo, actor, id); err != nil {
		return domain.Event{}, err
	}

	event, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return event, nil
}

func (s *EventService) Delete(ctx context.Context, actor domain.User, id uint) error {
	if _, err := ownedEvent(ctx, s.repo, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *EventService) MyEvents(ctx context.Context, actor domain.User, page domain.Page) ([]domain.Event, int64, error) {
	events, total, err := s.repo.FindAll(ctx, domain.EventFilter{OrganizerID: actor.ID, Viewer: &actor}, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, total, nil
}

// Attendees lists every registration of the event, cancelled ones included.
func (s *EventService) Attendees(ctx context.Context, actor domain.User, id uint) ([]domain.Registration, error) {
	if _, err := ownedEvent(ctx, s.repo, actor, id); err != nil {
		return nil, err
	}

	regs, err := s.regs.FindByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.regs.FindByEvent -> %w", err)
	}

	return regs, nil
}

func visibleEvent(ctx context.Context, events EventFinder, viewer *domain.User, id uint) (domain.Event, error) {
	event, err := events.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("events.FindByID -> %w", err)
	}
	if !event.VisibleTo(viewer) {
		return domain.Event{}, domain.ErrAccessDenied
	}

	return event, nil
}

// ownedEvent loads the event and checks that actor organizes it or is an admin.
func ownedEvent(ctx context.Context, events EventFinder, actor domain.User, id uint) (domain.Event, error) {
	event, err := events.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("events.FindByID -> %w", err)
	}
	if err = domain.Authorize(actor, event.OrganizerID, domain.RoleAdmin); err != nil {
		return domain.Event{}, err
	}

	return event, nil
}
