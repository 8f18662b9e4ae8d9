package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

type RegistrationRepository interface {
	Reserve(ctx context.Context, reg domain.Registration) (domain.Registration, error)
	UpdateQuantity(ctx context.Context, id uint, quantity int, totalAmount float64) (domain.Registration, error)
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
	FindByUser(ctx context.Context, userID uint, filter domain.RegistrationFilter, page domain.Page) ([]domain.Registration, int64, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error)
	Cancel(ctx context.Context, id uint) (domain.Registration, error)
}

type TicketFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Ticket, error)
}

type RegistrationService struct {
	repo    RegistrationRepository
	events  EventFinder
	tickets TicketFinder
}

func NewRegistrationService(repo RegistrationRepository, events EventFinder, tickets TicketFinder) *RegistrationService {
	return &RegistrationService{
		repo:    repo,
		events:  events,
		tickets: tickets,
	}
}

// Register books quantity units of the ticket for actor. The duplicate and
// capacity checks run atomically in the repository.
func (s *RegistrationService) Register(ctx context.Context, actor domain.User, eventID, ticketID uint, quantity int) (domain.Registration, error) {
	ticket, err := ticketForEvent(ctx, s.events, s.tickets, eventID, ticketID)
	if err != nil {
		return domain.Registration{}, err
	}

	reg, err := s.repo.Reserve(ctx, domain.Registration{
		EventID:     eventID,
		TicketID:    ticketID,
		UserID:      actor.ID,
		Quantity:    quantity,
		TotalAmount: ticket.Price * float64(quantity),
		Status:      domain.StatusConfirmed,
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Reserve -> %w", err)
	}

	return reg, nil
}

func (s *RegistrationService) MyRegistrations(ctx context.Context, actor domain.User, filter domain.RegistrationFilter, page domain.Page) ([]domain.Registration, int64, error) {
	regs, total, err := s.repo.FindByUser(ctx, actor.ID, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return regs, total, nil
}

func (s *RegistrationService) ByEvent(ctx context.Context, actor domain.User, eventID uint) ([]domain.Registration, error) {
	if _, err := ownedEvent(ctx, s.events, actor, eventID); err != nil {
		return nil, err
	}

	regs, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return regs, nil
}

func (s *RegistrationService) Get(ctx context.Context, actor domain.User, id uint) (domain.Registration, error) {
	return ownedRegistration(ctx, s.repo, actor, id)
}

// Update changes the quantity and recomputes the total. The registration's own
// units are released before the capacity check.
func (s *RegistrationService) Update(ctx context.Context, actor domain.User, id uint, quantity int) (domain.Registration, error) {
	reg, err := ownedRegistration(ctx, s.repo, actor, id)
	if err != nil {
		return domain.Registration{}, err
	}
	if !reg.Status.Active() {
		return domain.Registration{}, domain.ErrRegistrationClosed
	}

	ticket, err := s.tickets.FindByID(ctx, reg.TicketID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.tickets.FindByID -> %w", err)
	}

	updated, err := s.repo.UpdateQuantity(ctx, id, quantity, ticket.Price*float64(quantity))
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.UpdateQuantity -> %w", err)
	}

	return updated, nil
}

func (s *RegistrationService) Cancel(ctx context.Context, actor domain.User, id uint) (domain.Registration, error) {
	if _, err := ownedRegistration(ctx, s.repo, actor, id); err != nil {
		return domain.Registration{}, err
	}

	reg, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Cancel -> %w", err)
	}

	return reg, nil
}

type registrationFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
}

func ownedRegistration(ctx context.Context, regs registrationFinder, actor domain.User, id uint) (domain.Registration, error) {
	reg, err := regs.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("regs.FindByID -> %w", err)
	}
	if err = domain.Authorize(actor, reg.UserID, domain.RoleAdmin); err != nil {
		return domain.Registration{}, err
	}

	return reg, nil
}

// ticketForEvent loads the ticket and makes sure it is sold for the event.
func ticketForEvent(ctx context.Context, events EventFinder, tickets TicketFinder, eventID, ticketID uint) (domain.Ticket, error) {
	if _, err := events.FindByID(ctx, eventID); err != nil {
		return domain.Ticket{}, fmt.Errorf("events.FindByID -> %w", err)
	}

	ticket, err := tickets.FindByID(ctx, ticketID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("tickets.FindByID -> %w", err)
	}
	if ticket.EventID != eventID {
		return domain.Ticket{}, domain.ErrTicketNotFound
	}

	return ticket, nil
}
