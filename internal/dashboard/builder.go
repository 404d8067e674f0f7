package dashboard

import (
	"context"
	"fmt"

	"github.com/eventhub/backend/internal/errs"
	"github.com/eventhub/backend/internal/models"
)

// EventLister lists the catalog. catalog.Source satisfies it.
type EventLister interface {
	List(ctx context.Context) ([]models.Event, error)
}

// UserLister lists platform users. auth.Directory satisfies it.
type UserLister interface {
	List(ctx context.Context) []models.User
}

// TicketLister lists the tickets a user holds.
type TicketLister interface {
	ListForOwner(ctx context.Context, ownerID string) ([]models.Ticket, error)
}

// Options are the per-request dashboard parameters.
type Options struct {
	Status StatusFilter
}

// Builder assembles dashboard views. Users and Tickets are optional.
type Builder struct {
	Events  EventLister
	Users   UserLister
	Tickets TicketLister
}

// ParseStatus validates an admin status filter; empty means all.
func ParseStatus(s string) (StatusFilter, error) {
	switch f := StatusFilter(s); f {
	case "":
		return StatusAll, nil
	case StatusAll, StatusUpcoming, StatusDraft, StatusCompleted:
		return f, nil
	}
	return "", errs.Invalid("status", "Status must be all, upcoming, draft or completed")
}

// Build returns the view Select picks for u.
func (b *Builder) Build(ctx context.Context, u models.User, opts Options) (View, error) {
	switch Select(u) {
	case KindAdmin:
		return b.admin(ctx, opts)
	case KindSpeaker:
		return b.speaker(), nil
	case KindAttendee:
		return b.attendee(ctx, u)
	default:
		return AccessDenied{Message: "You don't have permission to access this page."}, nil
	}
}

func (b *Builder) admin(ctx context.Context, opts Options) (AdminView, error) {
	filter, err := ParseStatus(string(opts.Status))
	if err != nil {
		return AdminView{}, err
	}
	events, err := b.Events.List(ctx)
	if err != nil {
		return AdminView{}, fmt.Errorf("list events: %w", err)
	}

	v := AdminView{Filter: filter, Events: []AdminEventRow{}}
	for _, e := range events {
		v.Stats.TotalEvents++
		v.Stats.TotalAttendees += e.Attendees
		if e.Status == models.EventUpcoming {
			v.Stats.UpcomingEvents++
		}
		if e.IsPublished {
			v.Stats.TotalRevenue += e.Attendees * e.Price()
		}
		if filter != StatusAll && StatusFilter(e.Status) != filter {
			continue
		}
		v.Events = append(v.Events, AdminEventRow{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Attendees:   e.Attendees,
			Sessions:    e.SessionCount,
			Status:      e.Status,
		})
	}
	if b.Users != nil {
		v.Users = b.Users.List(ctx)
		v.Stats.ActiveUsers = len(v.Users)
	}
	return v, nil
}

func (b *Builder) speaker() SpeakerView {
	upcoming, past := SpeakerSeed()
	v := SpeakerView{Upcoming: upcoming, Past: past}
	var rated int
	var ratingSum float64
	for _, group := range [][]SpeakerSession{upcoming, past} {
		for _, s := range group {
			v.Stats.TotalSessions++
			v.Stats.TotalAttendees += s.Attendees
			if s.Rating > 0 {
				rated++
				ratingSum += s.Rating
			}
		}
	}
	v.Stats.UpcomingSessions = len(upcoming)
	if rated > 0 {
		v.Stats.AverageRating = ratingSum / float64(rated)
	}
	return v
}

func (b *Builder) attendee(ctx context.Context, u models.User) (AttendeeView, error) {
	events, saved, completed := AttendeeSeed()
	v := AttendeeView{Events: events, SavedSessions: saved}

	registered := make(map[string]struct{}, len(events))
	for _, e := range events {
		registered[e.ID] = struct{}{}
		v.Stats.SavedSessions += e.SavedSessions
	}
	if b.Tickets != nil {
		tickets, err := b.Tickets.ListForOwner(ctx, u.ID)
		if err != nil {
			return AttendeeView{}, fmt.Errorf("list tickets: %w", err)
		}
		v.Tickets = tickets
		for _, t := range tickets {
			registered[t.EventID] = struct{}{}
		}
	}
	v.Stats.RegisteredEvents = len(registered)
	v.Stats.EventCalendars = len(events)
	v.Stats.CompletedSessions = completed
	return v, nil
}
