package dao

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Poll struct {
	ID uint `gorm:"primaryKey"`

	EventID  uint           `gorm:"not null;index"`
	UserID   uint           `gorm:"not null;index"`
	Question string         `gorm:"size:200;not null"`
	Options  pq.StringArray `gorm:"type:text[];not null"`
	IsActive bool           `gorm:"not null;default:true"`

	Votes []PollVote `gorm:"constraint:OnDelete:CASCADE"`
	Event Event      `gorm:"constraint:OnDelete:CASCADE"`
	User  User       `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// PollVote has one row per voter, the composite key enforces one vote per
// user and poll.
type PollVote struct {
	PollID uint   `gorm:"primaryKey;autoIncrement:false"`
	UserID uint   `gorm:"primaryKey;autoIncrement:false"`
	Option string `gorm:"not null"`
	User   User   `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
}

type PollDAO struct {
	db *gorm.DB
}

func NewPollDAO(db *gorm.DB) *PollDAO {
	return &PollDAO{
		db: db,
	}
}

func (d *PollDAO) Insert(ctx context.Context, poll Poll) (Poll, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&poll)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return Poll{}, ErrEventNotFound
		}

		return Poll{}, result.Error
	}

	return d.FindByID(ctx, poll.ID)
}

func (d *PollDAO) FindByID(ctx context.Context, id uint) (Poll, error) {
	var poll Poll

	result := d.db.WithContext(ctx).Preload("Votes").First(&poll, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Poll{}, ErrPollNotFound
		}

		return Poll{}, result.Error
	}

	return poll, nil
}

func (d *PollDAO) FindByEvent(ctx context.Context, eventID uint) ([]Poll, error) {
	var polls []Poll

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Preload("Votes").
		Order("created_at DESC").Order("id DESC").
		Find(&polls)
	if result.Error != nil {
		return nil, result.Error
	}

	return polls, nil
}

// Update applies the given column values. Keys are column names.
// Update applies changes under a row lock. When the options change, votes for
// options that were removed are deleted in the same transaction.
func (d *PollDAO) Update(ctx context.Context, id uint, changes map[string]interface{}) (Poll, error) {
	if len(changes) == 0 {
		return d.FindByID(ctx, id)
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poll Poll
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&poll, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPollNotFound
			}
			return err
		}

		if err = tx.Model(&poll).Updates(changes).Error; err != nil {
			return err
		}

		options, ok := changes["options"].(pq.StringArray)
		if !ok {
			return nil
		}

		return tx.Where("poll_id = ? AND option NOT IN ?", id, []string(options)).Delete(&PollVote{}).Error
	})
	if err != nil {
		return Poll{}, err
	}

	return d.FindByID(ctx, id)
}

func (d *PollDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Poll{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPollNotFound
	}

	return nil
}

// InsertVote re-validates the poll under a share lock so a concurrent update
// that closes the poll or edits its options cannot interleave with the vote.
func (d *PollDAO) InsertVote(ctx context.Context, vote PollVote) (Poll, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poll Poll
		err := tx.Clauses(clause.Locking{Strength: "SHARE"}).First(&poll, vote.PollID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPollNotFound
			}
			return err
		}

		if !poll.IsActive {
			return ErrPollInactive
		}
		if !containsString(poll.Options, vote.Option) {
			return ErrPollOptionInvalid
		}

		if err = tx.Omit(clause.Associations).Create(&vote).Error; err != nil {
			if isUniqueViolation(err, "") {
				return ErrPollVoteExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return Poll{}, err
	}

	return d.FindByID(ctx, vote.PollID)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
