package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

type ForumRepository interface {
	Create(ctx context.Context, post domain.Post) (domain.Post, error)
	FindByID(ctx context.Context, id uint) (domain.Post, error)
	FindThreadsByEvent(ctx context.Context, eventID uint, page domain.Page) ([]domain.Post, int64, error)
	FindByUser(ctx context.Context, userID uint, page domain.Page) ([]domain.Post, int64, error)
	UpdateContent(ctx context.Context, id uint, content string) (domain.Post, error)
	Delete(ctx context.Context, id uint) error
}

type ForumService struct {
	repo   ForumRepository
	events EventFinder
}

func NewForumService(repo ForumRepository, events EventFinder) *ForumService {
	return &ForumService{
		repo:   repo,
		events: events,
	}
}

func (s *ForumService) Create(ctx context.Context, actor domain.User, eventID uint, content string) (domain.Post, error) {
	if _, err := visibleEvent(ctx, s.events, &actor, eventID); err != nil {
		return domain.Post{}, err
	}

	post, err := s.repo.Create(ctx, domain.Post{
		EventID: eventID,
		UserID:  actor.ID,
		Content: content,
	})
	if err != nil {
		return domain.Post{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return post, nil
}

// Reply posts under parentID. The reply belongs to the parent's event.
func (s *ForumService) Reply(ctx context.Context, actor domain.User, parentID uint, content string) (domain.Post, error) {
	parent, err := s.repo.FindByID(ctx, parentID)
	if err != nil {
		return domain.Post{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if _, err = visibleEvent(ctx, s.events, &actor, parent.EventID); err != nil {
		return domain.Post{}, err
	}

	post, err := s.repo.Create(ctx, domain.Post{
		EventID:  parent.EventID,
		UserID:   actor.ID,
		ParentID: &parent.ID,
		Content:  content,
	})
	if err != nil {
		return domain.Post{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return post, nil
}

// ListByEvent pages through top-level posts, each with its full reply tree.
func (s *ForumService) ListByEvent(ctx context.Context, viewer *domain.User, eventID uint, page domain.Page) ([]domain.Post, int64, error) {
	if _, err := visibleEvent(ctx, s.events, viewer, eventID); err != nil {
		return nil, 0, err
	}

	posts, total, err := s.repo.FindThreadsByEvent(ctx, eventID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindThreadsByEvent -> %w", err)
	}

	return posts, total, nil
}

func (s *ForumService) MyPosts(ctx context.Context, actor domain.User, page domain.Page) ([]domain.Post, int64, error) {
	posts, total, err := s.repo.FindByUser(ctx, actor.ID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return posts, total, nil
}

func (s *ForumService) Get(ctx context.Context, viewer *domain.User, id uint) (domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if _, err = visibleEvent(ctx, s.events, viewer, post.EventID); err != nil {
		return domain.Post{}, err
	}

	return post, nil
}

func (s *ForumService) Update(ctx context.Context, actor domain.User, id uint, content string) (domain.Post, error) {
	if err := s.authorize(ctx, actor, id); err != nil {
		return domain.Post{}, err
	}

	post, err := s.repo.UpdateContent(ctx, id, content)
	if err != nil {
		return domain.Post{}, fmt.Errorf("s.repo.UpdateContent -> %w", err)
	}

	return post, nil
}

// Delete removes the post together with its replies.
func (s *ForumService) Delete(ctx context.Context, actor domain.User, id uint) error {
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *ForumService) authorize(ctx context.Context, actor domain.User, id uint) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return domain.Authorize(actor, post.UserID, domain.RoleAdmin)
}
