package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository/dao"
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context, filter dao.EventFilter, offset, limit int) ([]dao.Event, int64, error)
	Update(ctx context.Context, id uint, changes map[string]interface{}) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Time:        event.Time,
		Location:    event.Location,
		Category:    string(event.Category),
		Privacy:     string(event.Privacy),
		OrganizerID: event.OrganizerID,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", translate(err))
	}

	return eventToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", translate(err))
	}

	return eventToDomain(found), nil
}

// FindAll maps the viewer onto the storage privacy rule: admins see every
// event, other signed in users see public ones and their own, anonymous
// viewers only public ones.
func (r *EventRepository) FindAll(ctx context.Context, filter domain.EventFilter, page domain.Page) ([]domain.Event, int64, error) {
	f := dao.EventFilter{
		Query:       filter.Query,
		Category:    string(filter.Category),
		Location:    filter.Location,
		DateFrom:    filter.DateFrom,
		OrganizerID: filter.OrganizerID,
	}
	if v := filter.Viewer; v != nil {
		f.ViewerID = v.ID
		f.AllPrivacy = v.Role.AtLeast(domain.RoleAdmin)
	}

	found, total, err := r.dao.FindAll(ctx, f, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindAll -> %w", translate(err))
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, eventToDomain(e))
	}

	return events, total, nil
}

func (r *EventRepository) Update(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error) {
	changes := map[string]interface{}{}
	if update.Title != nil {
		changes["title"] = *update.Title
	}
	if update.Description != nil {
		changes["description"] = *update.Description
	}
	if update.Date != nil {
		changes["date"] = *update.Date
	}
	if update.Time != nil {
		changes["time"] = *update.Time
	}
	if update.Location != nil {
		changes["location"] = *update.Location
	}
	if update.Category != nil {
		changes["category"] = string(*update.Category)
	}
	if update.Privacy != nil {
		changes["privacy"] = string(*update.Privacy)
	}

	updated, err := r.dao.Update(ctx, id, changes)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", translate(err))
	}

	return eventToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", translate(err))
	}

	return nil
}

func eventToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Category:    domain.Category(e.Category),
		Privacy:     domain.Privacy(e.Privacy),
		OrganizerID: e.OrganizerID,
		Organizer:   userRef(e.Organizer),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	for _, t := range e.Tickets {
		event.Tickets = append(event.Tickets, ticketToDomain(t))
	}

	return event
}

func eventRef(e dao.Event) *domain.EventRef {
	if e.ID == 0 {
		return nil
	}

	return &domain.EventRef{ID: e.ID, Title: e.Title, Date: e.Date, Location: e.Location}
}
