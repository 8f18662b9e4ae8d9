package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

type QARepository interface {
	Create(ctx context.Context, qa domain.QA) (domain.QA, error)
	FindByID(ctx context.Context, id uint) (domain.QA, error)
	FindByEvent(ctx context.Context, eventID uint, filter domain.QAFilter, page domain.Page) ([]domain.QA, int64, error)
	FindByUser(ctx context.Context, userID uint, page domain.Page) ([]domain.QA, int64, error)
	Update(ctx context.Context, id uint, update domain.QAUpdate) (domain.QA, error)
	Answer(ctx context.Context, id, answererID uint, answer string, at time.Time) (domain.QA, error)
	Delete(ctx context.Context, id uint) error
}

type QAService struct {
	repo   QARepository
	events EventFinder
	now    func() time.Time
}

func NewQAService(repo QARepository, events EventFinder) *QAService {
	return &QAService{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

func (s *QAService) Ask(ctx context.Context, actor domain.User, eventID uint, question string) (domain.QA, error) {
	if _, err := visibleEvent(ctx, s.events, &actor, eventID); err != nil {
		return domain.QA{}, err
	}

	qa, err := s.repo.Create(ctx, domain.QA{
		EventID:  eventID,
		UserID:   actor.ID,
		Question: question,
		Status:   domain.QAPending,
	})
	if err != nil {
		return domain.QA{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return qa, nil
}

func (s *QAService) ListByEvent(ctx context.Context, viewer *domain.User, eventID uint, filter domain.QAFilter, page domain.Page) ([]domain.QA, int64, error) {
	if _, err := visibleEvent(ctx, s.events, viewer, eventID); err != nil {
		return nil, 0, err
	}

	qas, total, err := s.repo.FindByEvent(ctx, eventID, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return qas, total, nil
}

func (s *QAService) MyQuestions(ctx context.Context, actor domain.User, page domain.Page) ([]domain.QA, int64, error) {
	qas, total, err := s.repo.FindByUser(ctx, actor.ID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return qas, total, nil
}

func (s *QAService) Get(ctx context.Context, viewer *domain.User, id uint) (domain.QA, error) {
	qa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.QA{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if _, err = visibleEvent(ctx, s.events, viewer, qa.EventID); err != nil {
		return domain.QA{}, err
	}

	return qa, nil
}

// Update lets the asker reword the question or reject it. Answering goes
// through Answer.
func (s *QAService) Update(ctx context.Context, actor domain.User, id uint, update domain.QAUpdate) (domain.QA, error) {
	qa, err := s.owned(ctx, actor, id)
	if err != nil {
		return domain.QA{}, err
	}
	if update.Status != nil {
		if *update.Status == domain.QAAnswered && qa.Status != domain.QAAnswered {
			return domain.QA{}, domain.ErrInvalidTransition
		}
		if err = qa.CanTransition(*update.Status); err != nil {
			return domain.QA{}, err
		}
	}

	qa, err = s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.QA{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return qa, nil
}

func (s *QAService) Delete(ctx context.Context, actor domain.User, id uint) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Answer is reserved to the organizer of the question's event and admins.
// An answered question can be answered again to correct it.
func (s *QAService) Answer(ctx context.Context, actor domain.User, id uint, answer string) (domain.QA, error) {
	qa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.QA{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if _, err = ownedEvent(ctx, s.events, actor, qa.EventID); err != nil {
		return domain.QA{}, err
	}
	if err = qa.CanTransition(domain.QAAnswered); err != nil {
		return domain.QA{}, err
	}

	qa, err = s.repo.Answer(ctx, id, actor.ID, answer, s.now())
	if err != nil {
		return domain.QA{}, fmt.Errorf("s.repo.Answer -> %w", err)
	}

	return qa, nil
}

func (s *QAService) owned(ctx context.Context, actor domain.User, id uint) (domain.QA, error) {
	qa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.QA{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if err = domain.Authorize(actor, qa.UserID, domain.RoleAdmin); err != nil {
		return domain.QA{}, err
	}

	return qa, nil
}
