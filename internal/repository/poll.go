package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository/dao"
)

type PollDAO interface {
	Insert(ctx context.Context, poll dao.Poll) (dao.Poll, error)
	FindByID(ctx context.Context, id uint) (dao.Poll, error)
	FindByEvent(ctx context.Context, eventID uint) ([]dao.Poll, error)
	Update(ctx context.Context, id uint, changes map[string]interface{}) (dao.Poll, error)
	Delete(ctx context.Context, id uint) error
	InsertVote(ctx context.Context, vote dao.PollVote) (dao.Poll, error)
}

type PollRepository struct {
	dao PollDAO
}

func NewPollRepository(dao PollDAO) *PollRepository {
	return &PollRepository{
		dao: dao,
	}
}

func (r *PollRepository) Create(ctx context.Context, poll domain.Poll) (domain.Poll, error) {
	created, err := r.dao.Insert(ctx, dao.Poll{
		EventID:  poll.EventID,
		UserID:   poll.UserID,
		Question: poll.Question,
		Options:  pq.StringArray(poll.Options),
		IsActive: poll.IsActive,
	})
	if err != nil {
		return domain.Poll{}, fmt.Errorf("r.dao.Insert -> %w", translate(err))
	}

	return pollToDomain(created), nil
}

func (r *PollRepository) FindByID(ctx context.Context, id uint) (domain.Poll, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Poll{}, fmt.Errorf("r.dao.FindByID -> %w", translate(err))
	}

	return pollToDomain(found), nil
}

func (r *PollRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.Poll, error) {
	found, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", translate(err))
	}

	polls := make([]domain.Poll, 0, len(found))
	for _, p := range found {
		polls = append(polls, pollToDomain(p))
	}

	return polls, nil
}

func (r *PollRepository) Update(ctx context.Context, id uint, update domain.PollUpdate) (domain.Poll, error) {
	changes := map[string]interface{}{}
	if update.Question != nil {
		changes["question"] = *update.Question
	}
	if update.Options != nil {
		changes["options"] = pq.StringArray(update.Options)
	}
	if update.IsActive != nil {
		changes["is_active"] = *update.IsActive
	}

	updated, err := r.dao.Update(ctx, id, changes)
	if err != nil {
		return domain.Poll{}, fmt.Errorf("r.dao.Update -> %w", translate(err))
	}

	return pollToDomain(updated), nil
}

func (r *PollRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", translate(err))
	}

	return nil
}

func (r *PollRepository) Vote(ctx context.Context, pollID, userID uint, option string) (domain.Poll, error) {
	voted, err := r.dao.InsertVote(ctx, dao.PollVote{PollID: pollID, UserID: userID, Option: option})
	if err != nil {
		return domain.Poll{}, fmt.Errorf("r.dao.InsertVote -> %w", translate(err))
	}

	return pollToDomain(voted), nil
}

func pollToDomain(p dao.Poll) domain.Poll {
	votes := make(map[uint]string, len(p.Votes))
	for _, v := range p.Votes {
		votes[v.UserID] = v.Option
	}

	return domain.Poll{
		ID:        p.ID,
		EventID:   p.EventID,
		UserID:    p.UserID,
		Question:  p.Question,
		Options:   []string(p.Options),
		IsActive:  p.IsActive,
		Votes:     votes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
