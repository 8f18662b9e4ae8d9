package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository/dao"
)

type TicketDAO interface {
	Insert(ctx context.Context, ticket dao.Ticket) (dao.Ticket, error)
	FindByID(ctx context.Context, id uint) (dao.Ticket, error)
	FindByEventID(ctx context.Context, eventID uint) ([]dao.Ticket, error)
	Update(ctx context.Context, id uint, changes map[string]interface{}) (dao.Ticket, error)
	Delete(ctx context.Context, id uint) error
	SoldQuantity(ctx context.Context, id uint) (int, error)
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	created, err := r.dao.Insert(ctx, dao.Ticket{
		EventID:     ticket.EventID,
		Name:        ticket.Name,
		Description: ticket.Description,
		Price:       ticket.Price,
		Quantity:    ticket.Quantity,
		Type:        string(ticket.Type),
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.Insert -> %w", translate(err))
	}

	return ticketToDomain(created), nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (domain.Ticket, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByID -> %w", translate(err))
	}

	return ticketToDomain(found), nil
}

func (r *TicketRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.Ticket, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", translate(err))
	}

	tickets := make([]domain.Ticket, 0, len(found))
	for _, t := range found {
		tickets = append(tickets, ticketToDomain(t))
	}

	return tickets, nil
}

func (r *TicketRepository) Update(ctx context.Context, id uint, update domain.TicketUpdate) (domain.Ticket, error) {
	changes := map[string]interface{}{}
	if update.Name != nil {
		changes["name"] = *update.Name
	}
	if update.Description != nil {
		changes["description"] = *update.Description
	}
	if update.Price != nil {
		changes["price"] = *update.Price
	}
	if update.Quantity != nil {
		changes["quantity"] = *update.Quantity
	}
	if update.Type != nil {
		changes["type"] = string(*update.Type)
	}

	updated, err := r.dao.Update(ctx, id, changes)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.Update -> %w", translate(err))
	}

	return ticketToDomain(updated), nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", translate(err))
	}

	return nil
}

func (r *TicketRepository) SoldQuantity(ctx context.Context, id uint) (int, error) {
	sold, err := r.dao.SoldQuantity(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SoldQuantity -> %w", translate(err))
	}

	return sold, nil
}

func ticketToDomain(t dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:          t.ID,
		EventID:     t.EventID,
		Name:        t.Name,
		Description: t.Description,
		Price:       t.Price,
		Quantity:    t.Quantity,
		Type:        domain.TicketType(t.Type),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ticketRef(t dao.Ticket) *domain.TicketRef {
	if t.ID == 0 {
		return nil
	}

	return &domain.TicketRef{ID: t.ID, Name: t.Name, Price: t.Price, Type: domain.TicketType(t.Type)}
}
