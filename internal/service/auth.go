package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/pkg/googleauth"
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (domain.User, error)
	LinkGoogleID(ctx context.Context, id uint, googleID string) (domain.User, error)
	Update(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error)
}

type GoogleTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (googleauth.Identity, error)
}

type AuthService struct {
	repo   AuthUserRepository
	google GoogleTokenVerifier
}

func NewAuthService(repo AuthUserRepository, google GoogleTokenVerifier) *AuthService {
	return &AuthService{
		repo:   repo,
		google: google,
	}
}

// Register always creates a plain user. Elevated roles are granted by admins.
func (s *AuthService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = hash
	user.Role = domain.RoleUser

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	// Accounts created through Google have no password.
	if user.Password == "" {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	return user, nil
}

// GoogleLogin verifies a Google ID token, then finds the account by Google
// subject, links an unlinked account with the same verified email, or creates
// a new one. created reports the last case.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (user domain.User, created bool, err error) {
	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, googleauth.ErrNotConfigured) {
			return domain.User{}, false, fmt.Errorf("s.google.Verify -> %w", err)
		}

		return domain.User{}, false, fmt.Errorf("s.google.Verify -> %w: %w", domain.ErrInvalidToken, err)
	}

	user, err = s.repo.FindByGoogleID(ctx, identity.Subject)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, false, fmt.Errorf("s.repo.FindByGoogleID -> %w", err)
	}

	user, err = s.repo.FindByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		if user.GoogleID != "" {
			return domain.User{}, false, domain.ErrGoogleIDMismatch
		}

		user, err = s.repo.LinkGoogleID(ctx, user.ID, identity.Subject)
		if err != nil {
			return domain.User{}, false, fmt.Errorf("s.repo.LinkGoogleID -> %w", err)
		}

		return user, false, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return domain.User{}, false, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	name := identity.Name
	if name == "" {
		name, _, _ = strings.Cut(identity.Email, "@")
	}

	user, err = s.repo.Create(ctx, domain.User{
		Name:     name,
		Email:    identity.Email,
		GoogleID: identity.Subject,
		Role:     domain.RoleUser,
	})
	if err != nil {
		return domain.User{}, false, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return user, true, nil
}

func (s *AuthService) Profile(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", tokenSubject(err))
	}

	return user, nil
}

// UpdateProfile changes name and email only.
func (s *AuthService) UpdateProfile(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	update.Role = nil

	user, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", tokenSubject(err))
	}

	return user, nil
}

// tokenSubject reports a missing account behind a valid token as an invalid
// token rather than a missing resource.
func tokenSubject(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrInvalidToken
	}

	return err
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
