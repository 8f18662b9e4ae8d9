package domain

import "time"

type Category string

const (
	CategoryConference Category = "conference"
	CategoryWorkshop   Category = "workshop"
	CategorySeminar    Category = "seminar"
	CategoryConcert    Category = "concert"
	CategorySports     Category = "sports"
	CategoryOther      Category = "other"
)

var Categories = []Category{
	CategoryConference, CategoryWorkshop, CategorySeminar, CategoryConcert, CategorySports, CategoryOther,
}

type Privacy string

const (
	PrivacyPublic     Privacy = "public"
	PrivacyPrivate    Privacy = "private"
	PrivacyInviteOnly Privacy = "invite-only"
)

var Privacies = []Privacy{PrivacyPublic, PrivacyPrivate, PrivacyInviteOnly}

type Event struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Category    Category  `json:"category"`
	Privacy     Privacy   `json:"privacy"`
	OrganizerID uint      `json:"organizerId"`
	Organizer   *UserRef  `json:"organizer,omitempty"`
	Tickets     []Ticket  `json:"tickets,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// VisibleTo treats invite-only like private: only the organizer and admins see
// it. A nil viewer is anonymous.
func (e Event) VisibleTo(viewer *User) bool {
	if e.Privacy == PrivacyPublic {
		return true
	}
	if viewer == nil {
		return false
	}

	return Authorize(*viewer, e.OrganizerID, RoleAdmin) == nil
}

func (e Event) Ref() *EventRef {
	return &EventRef{ID: e.ID, Title: e.Title, Date: e.Date, Location: e.Location}
}

type EventRef struct {
	ID       uint      `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
}

type EventFilter struct {
	Query    string
	Category Category
	Location string
	DateFrom *time.Time
	// Viewer decides which non-public events are included, nil is anonymous.
	Viewer *User
	// OrganizerID restricts the result to one organizer's events.
	OrganizerID uint
}

type EventUpdate struct {
	Title       *string
	Description *string
	Date        *time.Time
	Time        *string
	Location    *string
	Category    *Category
	Privacy     *Privacy
}
