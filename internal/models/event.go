package models

import "time"

// EventStatus is the lifecycle label shown on the admin dashboard.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventDraft     EventStatus = "draft"
	EventCompleted EventStatus = "completed"
)

// PriceTiers holds ticket prices in whole currency units.
type PriceTiers struct {
	General int `json:"general"`
	VIP     int `json:"vip"`
}

// Speaker is a speaker profile listed on an event page.
type Speaker struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// EventSession is a scheduled talk or activity within an event.
type EventSession struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Time        string `json:"time"`
	Speaker     string `json:"speaker"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// ScheduleDay groups the sessions of one event day.
type ScheduleDay struct {
	Day      string         `json:"day"`
	Sessions []EventSession `json:"sessions"`
}

// Event is a catalog record. Records are read-only once loaded.
type Event struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Location     string        `json:"location"`
	ImageURL     string        `json:"image_url"`
	Organizer    string        `json:"organizer"`
	Prices       PriceTiers    `json:"prices"`
	Tags         []string      `json:"tags"`
	SessionCount int           `json:"sessions"`
	Attendees    int           `json:"attendees"`
	Status       EventStatus   `json:"status"`
	IsPublished  bool          `json:"is_published"`
	Speakers     []Speaker     `json:"speakers,omitempty"`
	Schedule     []ScheduleDay `json:"schedule,omitempty"`
}

// Price is the general admission price used by the catalog filter.
func (e Event) Price() int { return e.Prices.General }

// HasTag reports whether the event carries tag.
func (e Event) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// FindSession returns the scheduled session with the given id.
func (e Event) FindSession(id string) (EventSession, bool) {
	for _, day := range e.Schedule {
		for _, s := range day.Sessions {
			if s.ID == id {
				return s, true
			}
		}
	}
	return EventSession{}, false
}
