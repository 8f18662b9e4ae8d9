package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

func eventsFixture() *mockEventRepo {
	events := new(mockEventRepo)
	events.On("FindByID", mock.Anything, uint(10)).Return(publicEvent(), nil)
	events.On("FindByID", mock.Anything, uint(11)).Return(privateEvent(), nil)

	return events
}

func TestForumService_Reply(t *testing.T) {
	repo := new(mockForumRepo)
	svc := NewForumService(repo, eventsFixture())

	t.Run("inherits the parent's event", func(t *testing.T) {
		parentID := uint(100)
		repo.On("FindByID", mock.Anything, parentID).Return(domain.Post{ID: parentID, EventID: 10, UserID: bob.ID}, nil)
		repo.On("Create", mock.Anything, domain.Post{
			EventID:  10,
			UserID:   alice.ID,
			ParentID: &parentID,
			Content:  "Count me in as well!",
		}).Return(domain.Post{ID: 101, EventID: 10, ParentID: &parentID}, nil)

		post, err := svc.Reply(context.Background(), alice, parentID, "Count me in as well!")
		require.NoError(t, err)
		assert.Equal(t, uint(10), post.EventID)
	})

	t.Run("missing parent", func(t *testing.T) {
		repo.On("FindByID", mock.Anything, uint(404)).Return(domain.Post{}, domain.ErrPostNotFound)

		_, err := svc.Reply(context.Background(), alice, 404, "Anyone there at all?")
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestForumService_UpdateDelete(t *testing.T) {
	repo := new(mockForumRepo)
	svc := NewForumService(repo, eventsFixture())
	repo.On("FindByID", mock.Anything, uint(100)).Return(domain.Post{ID: 100, EventID: 10, UserID: bob.ID}, nil)

	_, err := svc.Update(context.Background(), alice, 100, "This is not my post")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.ErrorIs(t, svc.Delete(context.Background(), alice, 100), domain.ErrForbidden)

	repo.On("UpdateContent", mock.Anything, uint(100), "Edited by the author").Return(domain.Post{ID: 100}, nil)
	_, err = svc.Update(context.Background(), bob, 100, "Edited by the author")
	assert.NoError(t, err)

	repo.On("Delete", mock.Anything, uint(100)).Return(nil)
	assert.NoError(t, svc.Delete(context.Background(), admin, 100))
}

func TestForumService_Create_PrivateEvent(t *testing.T) {
	svc := NewForumService(new(mockForumRepo), eventsFixture())

	_, err := svc.Create(context.Background(), alice, 11, "Can I post here please?")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPollService_Vote(t *testing.T) {
	repo := new(mockPollRepo)
	svc := NewPollService(repo, eventsFixture())

	open := domain.Poll{ID: 1, EventID: 10, UserID: organizer.ID, Options: []string{"A", "B"}, IsActive: true, Votes: map[uint]string{}}
	voted := open
	voted.Votes = map[uint]string{alice.ID: "A"}

	repo.On("FindByID", mock.Anything, uint(1)).Return(open, nil).Once()
	_, err := svc.Vote(context.Background(), alice, 1, "C")
	assert.ErrorIs(t, err, domain.ErrInvalidOption)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	repo.On("FindByID", mock.Anything, uint(1)).Return(open, nil).Once()
	repo.On("Vote", mock.Anything, uint(1), alice.ID, "A").Return(voted, nil).Once()
	poll, err := svc.Vote(context.Background(), alice, 1, "A")
	require.NoError(t, err)
	assert.Equal(t, "A", poll.Votes[alice.ID])

	repo.On("FindByID", mock.Anything, uint(1)).Return(voted, nil).Once()
	_, err = svc.Vote(context.Background(), alice, 1, "B")
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
	assert.ErrorIs(t, err, domain.ErrConflict)

	repo.AssertNumberOfCalls(t, "Vote", 1)
}

func TestPollService_Vote_RaceLostInStorage(t *testing.T) {
	repo := new(mockPollRepo)
	svc := NewPollService(repo, eventsFixture())
	open := domain.Poll{ID: 1, EventID: 10, Options: []string{"A", "B"}, IsActive: true}
	repo.On("FindByID", mock.Anything, uint(1)).Return(open, nil)
	repo.On("Vote", mock.Anything, uint(1), alice.ID, "B").Return(domain.Poll{}, domain.ErrAlreadyVoted)

	_, err := svc.Vote(context.Background(), alice, 1, "B")
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
}

func TestPollService_Create(t *testing.T) {
	repo := new(mockPollRepo)
	svc := NewPollService(repo, eventsFixture())

	_, err := svc.Create(context.Background(), alice, domain.Poll{EventID: 10, Question: "Pizza?", Options: []string{"Yes", "No"}})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	repo.On("Create", mock.Anything, domain.Poll{
		EventID:  10,
		UserID:   organizer.ID,
		Question: "Pizza?",
		Options:  []string{"Yes", "No"},
		IsActive: true,
	}).Return(domain.Poll{ID: 3}, nil)

	poll, err := svc.Create(context.Background(), organizer, domain.Poll{EventID: 10, Question: "Pizza?", Options: []string{"Yes", "No"}})
	require.NoError(t, err)
	assert.Equal(t, uint(3), poll.ID)
}

func TestQAService_Answer(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	repo := new(mockQARepo)
	svc := NewQAService(repo, eventsFixture())
	svc.now = func() time.Time { return now }

	repo.On("FindByID", mock.Anything, uint(1)).Return(domain.QA{ID: 1, EventID: 10, UserID: alice.ID, Status: domain.QAPending}, nil)
	repo.On("FindByID", mock.Anything, uint(2)).Return(domain.QA{ID: 2, EventID: 10, UserID: alice.ID, Status: domain.QARejected}, nil)

	_, err := svc.Answer(context.Background(), bob, 1, "Yes")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Answer(context.Background(), organizer, 2, "Too late")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	repo.On("Answer", mock.Anything, uint(1), organizer.ID, "Doors open at 9.", now).
		Return(domain.QA{ID: 1, Status: domain.QAAnswered, AnswererID: &organizer.ID, AnsweredAt: &now}, nil)
	qa, err := svc.Answer(context.Background(), organizer, 1, "Doors open at 9.")
	require.NoError(t, err)
	assert.Equal(t, domain.QAAnswered, qa.Status)
}

func TestQAService_Update(t *testing.T) {
	repo := new(mockQARepo)
	svc := NewQAService(repo, eventsFixture())
	repo.On("FindByID", mock.Anything, uint(1)).Return(domain.QA{ID: 1, EventID: 10, UserID: alice.ID, Status: domain.QAPending}, nil)

	answered := domain.QAAnswered
	_, err := svc.Update(context.Background(), alice, 1, domain.QAUpdate{Status: &answered})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	question := "Is parking available nearby?"
	_, err = svc.Update(context.Background(), bob, 1, domain.QAUpdate{Question: &question})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	rejected := domain.QARejected
	repo.On("Update", mock.Anything, uint(1), domain.QAUpdate{Status: &rejected}).
		Return(domain.QA{ID: 1, Status: domain.QARejected}, nil)
	qa, err := svc.Update(context.Background(), admin, 1, domain.QAUpdate{Status: &rejected})
	require.NoError(t, err)
	assert.Equal(t, domain.QARejected, qa.Status)
}

func TestNotificationService_Create(t *testing.T) {
	base := domain.Notification{EventID: 10, Title: "Venue change", Message: "Room 2", Type: domain.NotificationWarning}

	t.Run("broadcast without targets", func(t *testing.T) {
		repo := new(mockNotificationRepo)
		svc := NewNotificationService(repo, eventsFixture())
		repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(list []domain.Notification) bool {
			return len(list) == 1 && list[0].Audience.IsBroadcast()
		})).Return([]domain.Notification{{ID: 1}}, nil)

		list, err := svc.Create(context.Background(), organizer, base, nil)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("one row per distinct target", func(t *testing.T) {
		repo := new(mockNotificationRepo)
		svc := NewNotificationService(repo, eventsFixture())
		repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(list []domain.Notification) bool {
			if len(list) != 2 {
				return false
			}
			first, _ := list[0].Audience.UserID()
			second, _ := list[1].Audience.UserID()
			return first == alice.ID && second == bob.ID
		})).Return([]domain.Notification{{ID: 1}, {ID: 2}}, nil)

		list, err := svc.Create(context.Background(), organizer, base, []uint{alice.ID, bob.ID, alice.ID})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("only the organizer or an admin", func(t *testing.T) {
		svc := NewNotificationService(new(mockNotificationRepo), eventsFixture())

		_, err := svc.Create(context.Background(), alice, base, nil)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo, eventsFixture())
	repo.On("FindByID", mock.Anything, uint(1)).Return(domain.Notification{ID: 1, Audience: domain.Direct(alice.ID)}, nil)
	repo.On("FindByID", mock.Anything, uint(2)).Return(domain.Notification{ID: 2, Audience: domain.Broadcast()}, nil)
	repo.On("MarkRead", mock.Anything, uint(1)).Return(domain.Notification{ID: 1, IsRead: true}, nil)

	n, err := svc.MarkRead(context.Background(), alice, 1)
	require.NoError(t, err)
	assert.True(t, n.IsRead)

	_, err = svc.MarkRead(context.Background(), bob, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.MarkRead(context.Background(), alice, 2)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.ErrorIs(t, svc.Delete(context.Background(), bob, 1), domain.ErrForbidden)
}
