package repository

import (
	"errors"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository/dao"
)

var daoErrors = []struct {
	dao    error
	domain *domain.Error
}{
	{dao.ErrUserNotFound, domain.ErrUserNotFound},
	{dao.ErrUserEmailExists, domain.ErrEmailExists},
	{dao.ErrEventNotFound, domain.ErrEventNotFound},
	{dao.ErrTicketNotFound, domain.ErrTicketNotFound},
	{dao.ErrTicketOversold, domain.ErrTicketOversold},
	{dao.ErrRegistrationNotFound, domain.ErrRegistrationNotFound},
	{dao.ErrRegistrationExists, domain.ErrAlreadyRegistered},
	{dao.ErrRegistrationInactive, domain.ErrRegistrationClosed},
	{dao.ErrPostNotFound, domain.ErrPostNotFound},
	{dao.ErrPollNotFound, domain.ErrPollNotFound},
	{dao.ErrPollInactive, domain.ErrPollInactive},
	{dao.ErrPollOptionInvalid, domain.ErrInvalidOption},
	{dao.ErrPollVoteExists, domain.ErrAlreadyVoted},
	{dao.ErrQANotFound, domain.ErrQANotFound},
	{dao.ErrNotificationNotFound, domain.ErrNotificationNotFound},
}

// translate turns storage sentinels into domain errors. Anything else is
// returned unchanged and ends up as an internal error.
func translate(err error) error {
	for _, e := range daoErrors {
		if errors.Is(err, e.dao) {
			return e.domain
		}
	}

	var insufficient *dao.InsufficientTicketsError
	if errors.As(err, &insufficient) {
		return domain.InsufficientTickets(insufficient.Available)
	}

	return err
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
