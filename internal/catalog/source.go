package catalog

import (
	"context"
	"slices"

	"github.com/eventhub/backend/internal/errs"
	"github.com/eventhub/backend/internal/models"
)

// Source provides catalog records. Implementations return copies the caller may keep.
type Source interface {
	List(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id string) (models.Event, error)
	// FindSession returns the event session with the given id and the event it belongs to.
	FindSession(ctx context.Context, sessionID string) (models.Event, models.EventSession, error)
}

func findSession(events []models.Event, sessionID string) (models.Event, models.EventSession, error) {
	for _, e := range events {
		if s, ok := e.FindSession(sessionID); ok {
			return e, s, nil
		}
	}
	return models.Event{}, models.EventSession{}, errs.NotFound("session", sessionID)
}

// Memory is a fixed in-process catalog.
type Memory struct {
	events []models.Event
}

// NewMemory serves events in the given order.
func NewMemory(events []models.Event) *Memory {
	return &Memory{events: slices.Clone(events)}
}

// List returns every event in catalog order.
func (m *Memory) List(context.Context) ([]models.Event, error) {
	return slices.Clone(m.events), nil
}

// Get returns the event with the given id.
func (m *Memory) Get(_ context.Context, id string) (models.Event, error) {
	for _, e := range m.events {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Event{}, errs.NotFound("event", id)
}

// FindSession looks the session up in every event's schedule.
func (m *Memory) FindSession(_ context.Context, sessionID string) (models.Event, models.EventSession, error) {
	return findSession(m.events, sessionID)
}
