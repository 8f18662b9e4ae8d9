package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository/dao"
)

type ForumPostDAO interface {
	Insert(ctx context.Context, post dao.ForumPost) (dao.ForumPost, error)
	FindByID(ctx context.Context, id uint) (dao.ForumPost, error)
	FindRootsByEvent(ctx context.Context, eventID uint, offset, limit int) ([]dao.ForumPost, int64, error)
	FindRepliesByEvent(ctx context.Context, eventID uint) ([]dao.ForumPost, error)
	FindByUser(ctx context.Context, userID uint, offset, limit int) ([]dao.ForumPost, int64, error)
	UpdateContent(ctx context.Context, id uint, content string) (dao.ForumPost, error)
	Delete(ctx context.Context, id uint) error
}

type ForumRepository struct {
	dao ForumPostDAO
}

func NewForumRepository(dao ForumPostDAO) *ForumRepository {
	return &ForumRepository{
		dao: dao,
	}
}

func (r *ForumRepository) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	created, err := r.dao.Insert(ctx, dao.ForumPost{
		EventID:  post.EventID,
		UserID:   post.UserID,
		ParentID: post.ParentID,
		Content:  post.Content,
	})
	if err != nil {
		return domain.Post{}, fmt.Errorf("r.dao.Insert -> %w", translate(err))
	}

	return postToDomain(created), nil
}

func (r *ForumRepository) FindByID(ctx context.Context, id uint) (domain.Post, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("r.dao.FindByID -> %w", translate(err))
	}

	return postToDomain(found), nil
}

// FindThreadsByEvent pages over top level posts and nests every reply below
// its parent.
func (r *ForumRepository) FindThreadsByEvent(ctx context.Context, eventID uint, page domain.Page) ([]domain.Post, int64, error) {
	roots, total, err := r.dao.FindRootsByEvent(ctx, eventID, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindRootsByEvent -> %w", translate(err))
	}
	if len(roots) == 0 {
		return []domain.Post{}, total, nil
	}

	replies, err := r.dao.FindRepliesByEvent(ctx, eventID)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindRepliesByEvent -> %w", translate(err))
	}

	return domain.Thread(postsToDomain(roots), postsToDomain(replies)), total, nil
}

func (r *ForumRepository) FindByUser(ctx context.Context, userID uint, page domain.Page) ([]domain.Post, int64, error) {
	found, total, err := r.dao.FindByUser(ctx, userID, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindByUser -> %w", translate(err))
	}

	return postsToDomain(found), total, nil
}

func (r *ForumRepository) UpdateContent(ctx context.Context, id uint, content string) (domain.Post, error) {
	updated, err := r.dao.UpdateContent(ctx, id, content)
	if err != nil {
		return domain.Post{}, fmt.Errorf("r.dao.UpdateContent -> %w", translate(err))
	}

	return postToDomain(updated), nil
}

func (r *ForumRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", translate(err))
	}

	return nil
}

func postToDomain(p dao.ForumPost) domain.Post {
	return domain.Post{
		ID:        p.ID,
		EventID:   p.EventID,
		UserID:    p.UserID,
		ParentID:  p.ParentID,
		Content:   p.Content,
		Author:    userRef(p.User),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func postsToDomain(posts []dao.ForumPost) []domain.Post {
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, postToDomain(p))
	}

	return out
}
