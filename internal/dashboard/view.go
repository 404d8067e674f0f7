// Package dashboard picks the dashboard a user sees and assembles its data.
package dashboard

import (
	"time"

	"github.com/eventhub/backend/internal/models"
)

// Kind is the dashboard variant.
type Kind string

const (
	KindAdmin        Kind = "admin"
	KindSpeaker      Kind = "speaker"
	KindAttendee     Kind = "attendee"
	KindAccessDenied Kind = "access_denied"
)

// Select maps a user's role to exactly one dashboard kind.
func Select(u models.User) Kind {
	switch u.Role {
	case models.RoleAdmin:
		return KindAdmin
	case models.RoleSpeaker:
		return KindSpeaker
	case models.RoleAttendee:
		return KindAttendee
	default:
		return KindAccessDenied
	}
}

// View is one of AdminView, SpeakerView, AttendeeView or AccessDenied.
type View interface {
	Kind() Kind
}

// StatusFilter narrows the admin event table.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusUpcoming  StatusFilter = StatusFilter(models.EventUpcoming)
	StatusDraft     StatusFilter = StatusFilter(models.EventDraft)
	StatusCompleted StatusFilter = StatusFilter(models.EventCompleted)
)

// AdminEventRow is one line of the admin event table.
type AdminEventRow struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
	Attendees   int                `json:"attendees"`
	Sessions    int                `json:"sessions"`
	Status      models.EventStatus `json:"status"`
}

// AdminStats summarizes the whole catalog regardless of the status filter.
type AdminStats struct {
	TotalEvents    int `json:"total_events"`
	UpcomingEvents int `json:"upcoming_events"`
	TotalAttendees int `json:"total_attendees"`
	TotalRevenue   int `json:"total_revenue"`
	ActiveUsers    int `json:"active_users"`
}

// AdminView is the admin dashboard.
type AdminView struct {
	Filter StatusFilter    `json:"filter"`
	Events []AdminEventRow `json:"events"`
	Users  []models.User   `json:"users,omitempty"`
	Stats  AdminStats      `json:"stats"`
}

func (AdminView) Kind() Kind { return KindAdmin }

// SpeakerSession is a talk on the speaker dashboard.
type SpeakerSession struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	EventID      string    `json:"event_id"`
	EventTitle   string    `json:"event_title"`
	Date         time.Time `json:"date"`
	Duration     string    `json:"duration"`
	Attendees    int       `json:"attendees"`
	Status       string    `json:"status,omitempty"`
	Rating       float64   `json:"rating,omitempty"`
	RecordingURL string    `json:"recording_url,omitempty"`
}

// SpeakerStats are derived from the speaker's sessions.
type SpeakerStats struct {
	TotalSessions    int     `json:"total_sessions"`
	UpcomingSessions int     `json:"upcoming_sessions"`
	TotalAttendees   int     `json:"total_attendees"`
	AverageRating    float64 `json:"average_rating"`
}

// SpeakerView is the speaker dashboard.
type SpeakerView struct {
	Upcoming []SpeakerSession `json:"upcoming"`
	Past     []SpeakerSession `json:"past"`
	Stats    SpeakerStats     `json:"stats"`
}

func (SpeakerView) Kind() Kind { return KindSpeaker }

// AttendeeEvent is an event the attendee is going to.
type AttendeeEvent struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	ImageURL      string    `json:"image_url"`
	Sessions      int       `json:"sessions"`
	SavedSessions int       `json:"saved_sessions"`
}

// SavedSession is a session the attendee bookmarked.
type SavedSession struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	EventID    string        `json:"event_id"`
	EventTitle string        `json:"event_title"`
	Date       time.Time     `json:"date"`
	Duration   string        `json:"duration"`
	Speaker    models.Sender `json:"speaker"`
	Saved      bool          `json:"saved"`
	Reminder   bool          `json:"reminder"`
}

// AttendeeStats are derived from the attendee's events, sessions and tickets.
type AttendeeStats struct {
	RegisteredEvents  int `json:"registered_events"`
	SavedSessions     int `json:"saved_sessions"`
	CompletedSessions int `json:"completed_sessions"`
	EventCalendars    int `json:"event_calendars"`
}

// AttendeeView is the attendee dashboard.
type AttendeeView struct {
	Events        []AttendeeEvent `json:"events"`
	SavedSessions []SavedSession  `json:"saved_sessions"`
	Tickets       []models.Ticket `json:"tickets,omitempty"`
	Stats         AttendeeStats   `json:"stats"`
}

func (AttendeeView) Kind() Kind { return KindAttendee }

// AccessDenied is shown to users whose role has no dashboard.
type AccessDenied struct {
	Message string `json:"message"`
}

func (AccessDenied) Kind() Kind { return KindAccessDenied }
