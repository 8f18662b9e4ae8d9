package domain

import "time"

type QAStatus string

const (
	QAPending  QAStatus = "pending"
	QAAnswered QAStatus = "answered"
	QARejected QAStatus = "rejected"
)

var QAStatuses = []QAStatus{QAPending, QAAnswered, QARejected}

type QA struct {
	ID         uint       `json:"id"`
	EventID    uint       `json:"eventId"`
	UserID     uint       `json:"userId"`
	AnswererID *uint      `json:"answererId"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Status     QAStatus   `json:"status"`
	AnsweredAt *time.Time `json:"answeredAt"`
	Asker      *UserRef   `json:"asker,omitempty"`
	Answerer   *UserRef   `json:"answerer,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CanTransition allows pending to move to answered or rejected. Both are
// terminal. Staying in the same status is always allowed.
func (q QA) CanTransition(to QAStatus) error {
	if q.Status == to {
		return nil
	}
	if q.Status == QAPending && (to == QAAnswered || to == QARejected) {
		return nil
	}

	return ErrInvalidTransition
}

type QAFilter struct {
	Status QAStatus
}

type QAUpdate struct {
	Question *string
	Status   *QAStatus
}
