package domain

import (
	"encoding/json"
	"time"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

var NotificationTypes = []NotificationType{NotificationInfo, NotificationWarning, NotificationSuccess, NotificationError}

// Audience is either one user or every attendee of the event.
// The zero value is a broadcast.
type Audience struct {
	userID uint
}

func Direct(userID uint) Audience {
	return Audience{userID: userID}
}

func Broadcast() Audience {
	return Audience{}
}

func (a Audience) IsBroadcast() bool {
	return a.userID == 0
}

// UserID returns the addressee of a direct notification.
func (a Audience) UserID() (uint, bool) {
	return a.userID, a.userID != 0
}

// OwnerID is the id to feed to Authorize. Broadcasts have no owner.
func (a Audience) OwnerID() uint {
	return a.userID
}

func (a Audience) MarshalJSON() ([]byte, error) {
	if a.IsBroadcast() {
		return json.Marshal(struct {
			Kind string `json:"kind"`
		}{Kind: "broadcast"})
	}

	return json.Marshal(struct {
		Kind   string `json:"kind"`
		UserID uint   `json:"userId"`
	}{Kind: "direct", UserID: a.userID})
}

type Notification struct {
	ID        uint             `json:"id"`
	EventID   uint             `json:"eventId"`
	Audience  Audience         `json:"audience"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type NotificationFilter struct {
	IsRead *bool
	Type   NotificationType
}
