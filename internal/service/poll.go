package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

type PollRepository interface {
	Create(ctx context.Context, poll domain.Poll) (domain.Poll, error)
	FindByID(ctx context.Context, id uint) (domain.Poll, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.Poll, error)
	Update(ctx context.Context, id uint, update domain.PollUpdate) (domain.Poll, error)
	Delete(ctx context.Context, id uint) error
	Vote(ctx context.Context, pollID, userID uint, option string) (domain.Poll, error)
}

type PollService struct {
	repo   PollRepository
	events EventFinder
}

func NewPollService(repo PollRepository, events EventFinder) *PollService {
	return &PollService{
		repo:   repo,
		events: events,
	}
}

func (s *PollService) Create(ctx context.Context, actor domain.User, poll domain.Poll) (domain.Poll, error) {
	if _, err := ownedEvent(ctx, s.events, actor, poll.EventID); err != nil {
		return domain.Poll{}, err
	}
	poll.UserID = actor.ID
	poll.IsActive = true

	created, err := s.repo.Create(ctx, poll)
	if err != nil {
		return domain.Poll{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PollService) ListByEvent(ctx context.Context, viewer *domain.User, eventID uint) ([]domain.Poll, error) {
	if _, err := visibleEvent(ctx, s.events, viewer, eventID); err != nil {
		return nil, err
	}

	polls, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return polls, nil
}

func (s *PollService) Get(ctx context.Context, viewer *domain.User, id uint) (domain.Poll, error) {
	poll, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Poll{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if _, err = visibleEvent(ctx, s.events, viewer, poll.EventID); err != nil {
		return domain.Poll{}, err
	}

	return poll, nil
}

func (s *PollService) Results(ctx context.Context, viewer *domain.User, id uint) (domain.PollResults, error) {
	poll, err := s.Get(ctx, viewer, id)
	if err != nil {
		return domain.PollResults{}, err
	}

	return poll.Results(), nil
}

func (s *PollService) Update(ctx context.Context, actor domain.User, id uint, update domain.PollUpdate) (domain.Poll, error) {
	if err := s.authorize(ctx, actor, id); err != nil {
		return domain.Poll{}, err
	}

	poll, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Poll{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return poll, nil
}

func (s *PollService) Delete(ctx context.Context, actor domain.User, id uint) error {
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Vote records one vote per user. There is no way to change a vote.
func (s *PollService) Vote(ctx context.Context, actor domain.User, id uint, option string) (domain.Poll, error) {
	poll, err := s.Get(ctx, &actor, id)
	if err != nil {
		return domain.Poll{}, err
	}
	if err = poll.CheckVote(actor.ID, option); err != nil {
		return domain.Poll{}, err
	}

	poll, err = s.repo.Vote(ctx, id, actor.ID, option)
	if err != nil {
		return domain.Poll{}, fmt.Errorf("s.repo.Vote -> %w", err)
	}

	return poll, nil
}

func (s *PollService) authorize(ctx context.Context, actor domain.User, id uint) error {
	poll, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return domain.Authorize(actor, poll.UserID, domain.RoleAdmin)
}
