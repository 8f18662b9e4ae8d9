package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	FindByID(ctx context.Context, id uint) (domain.Ticket, error)
	FindByEventID(ctx context.Context, eventID uint) ([]domain.Ticket, error)
	Update(ctx context.Context, id uint, update domain.TicketUpdate) (domain.Ticket, error)
	Delete(ctx context.Context, id uint) error
	SoldQuantity(ctx context.Context, id uint) (int, error)
}

type TicketService struct {
	repo   TicketRepository
	events EventFinder
}

func NewTicketService(repo TicketRepository, events EventFinder) *TicketService {
	return &TicketService{
		repo:   repo,
		events: events,
	}
}

func (s *TicketService) Create(ctx context.Context, actor domain.User, ticket domain.Ticket) (domain.Ticket, error) {
	if _, err := ownedEvent(ctx, s.events, actor, ticket.EventID); err != nil {
		return domain.Ticket{}, err
	}
	if ticket.Type == "" {
		ticket.Type = domain.TicketRegular
	}

	created, err := s.repo.Create(ctx, ticket)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ListByEvent returns the tickets ordered by price, cheapest first.
func (s *TicketService) ListByEvent(ctx context.Context, viewer *domain.User, eventID uint) ([]domain.Ticket, error) {
	if _, err := visibleEvent(ctx, s.events, viewer, eventID); err != nil {
		return nil, err
	}

	tickets, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	return tickets, nil
}

func (s *TicketService) Get(ctx context.Context, viewer *domain.User, id uint) (domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if _, err = visibleEvent(ctx, s.events, viewer, ticket.EventID); err != nil {
		return domain.Ticket{}, err
	}

	return ticket, nil
}

func (s *TicketService) Update(ctx context.Context, actor domain.User, id uint, update domain.TicketUpdate) (domain.Ticket, error) {
	if _, err := s.ownedTicket(ctx, actor, id); err != nil {
		return domain.Ticket{}, err
	}

	ticket, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return ticket, nil
}

func (s *TicketService) Delete(ctx context.Context, actor domain.User, id uint) error {
	if _, err := s.ownedTicket(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Availability counts pending and confirmed registrations, the same sum the
// registration path checks against.
func (s *TicketService) Availability(ctx context.Context, viewer *domain.User, id uint) (domain.Availability, error) {
	ticket, err := s.Get(ctx, viewer, id)
	if err != nil {
		return domain.Availability{}, err
	}

	sold, err := s.repo.SoldQuantity(ctx, id)
	if err != nil {
		return domain.Availability{}, fmt.Errorf("s.repo.SoldQuantity -> %w", err)
	}

	return domain.NewAvailability(ticket, sold), nil
}

func (s *TicketService) ownedTicket(ctx context.Context, actor domain.User, id uint) (domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if _, err = ownedEvent(ctx, s.events, actor, ticket.EventID); err != nil {
		return domain.Ticket{}, err
	}

	return ticket, nil
}
