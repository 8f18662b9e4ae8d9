package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository/dao"
)

type QADAO interface {
	Insert(ctx context.Context, qa dao.QA) (dao.QA, error)
	FindByID(ctx context.Context, id uint) (dao.QA, error)
	FindAll(ctx context.Context, filter dao.QAFilter, offset, limit int) ([]dao.QA, int64, error)
	Update(ctx context.Context, id uint, changes map[string]interface{}) (dao.QA, error)
	Delete(ctx context.Context, id uint) error
}

type QARepository struct {
	dao QADAO
}

func NewQARepository(dao QADAO) *QARepository {
	return &QARepository{
		dao: dao,
	}
}

func (r *QARepository) Create(ctx context.Context, qa domain.QA) (domain.QA, error) {
	created, err := r.dao.Insert(ctx, dao.QA{
		EventID:  qa.EventID,
		UserID:   qa.UserID,
		Question: qa.Question,
		Status:   string(qa.Status),
	})
	if err != nil {
		return domain.QA{}, fmt.Errorf("r.dao.Insert -> %w", translate(err))
	}

	return qaToDomain(created), nil
}

func (r *QARepository) FindByID(ctx context.Context, id uint) (domain.QA, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.QA{}, fmt.Errorf("r.dao.FindByID -> %w", translate(err))
	}

	return qaToDomain(found), nil
}

func (r *QARepository) FindByEvent(ctx context.Context, eventID uint, filter domain.QAFilter, page domain.Page) ([]domain.QA, int64, error) {
	return r.findAll(ctx, dao.QAFilter{EventID: eventID, Status: string(filter.Status)}, page)
}

func (r *QARepository) FindByUser(ctx context.Context, userID uint, page domain.Page) ([]domain.QA, int64, error) {
	return r.findAll(ctx, dao.QAFilter{UserID: userID}, page)
}

func (r *QARepository) findAll(ctx context.Context, filter dao.QAFilter, page domain.Page) ([]domain.QA, int64, error) {
	found, total, err := r.dao.FindAll(ctx, filter, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindAll -> %w", translate(err))
	}

	qas := make([]domain.QA, 0, len(found))
	for _, q := range found {
		qas = append(qas, qaToDomain(q))
	}

	return qas, total, nil
}

func (r *QARepository) Update(ctx context.Context, id uint, update domain.QAUpdate) (domain.QA, error) {
	changes := map[string]interface{}{}
	if update.Question != nil {
		changes["question"] = *update.Question
	}
	if update.Status != nil {
		changes["status"] = string(*update.Status)
	}

	updated, err := r.dao.Update(ctx, id, changes)
	if err != nil {
		return domain.QA{}, fmt.Errorf("r.dao.Update -> %w", translate(err))
	}

	return qaToDomain(updated), nil
}

func (r *QARepository) Answer(ctx context.Context, id, answererID uint, answer string, at time.Time) (domain.QA, error) {
	updated, err := r.dao.Update(ctx, id, map[string]interface{}{
		"answer":      answer,
		"answerer_id": answererID,
		"status":      string(domain.QAAnswered),
		"answered_at": at,
	})
	if err != nil {
		return domain.QA{}, fmt.Errorf("r.dao.Update -> %w", translate(err))
	}

	return qaToDomain(updated), nil
}

func (r *QARepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", translate(err))
	}

	return nil
}

func qaToDomain(q dao.QA) domain.QA {
	qa := domain.QA{
		ID:         q.ID,
		EventID:    q.EventID,
		UserID:     q.UserID,
		AnswererID: q.AnswererID,
		Question:   q.Question,
		Answer:     strVal(q.Answer),
		Status:     domain.QAStatus(q.Status),
		AnsweredAt: q.AnsweredAt,
		Asker:      userRef(q.User),
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
	if q.Answerer != nil {
		qa.Answerer = userRef(*q.Answerer)
	}

	return qa
}
