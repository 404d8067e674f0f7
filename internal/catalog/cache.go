package catalog

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/eventhub/backend/internal/models"
)

type sessionHit struct {
	event   models.Event
	session models.EventSession
}

// Cached is a read-through cache over another Source for single-record lookups. List always
// goes to the underlying source.
type Cached struct {
	inner    Source
	events   *lru.ARCCache
	sessions *lru.ARCCache
}

// NewCached caches up to size events and size sessions from inner.
func NewCached(inner Source, size int) (*Cached, error) {
	events, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("create event cache: %w", err)
	}
	sessions, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &Cached{inner: inner, events: events, sessions: sessions}, nil
}

// List delegates to the underlying source.
func (c *Cached) List(ctx context.Context) ([]models.Event, error) {
	return c.inner.List(ctx)
}

// Get serves id from cache, loading it on a miss. Failed lookups are not cached.
func (c *Cached) Get(ctx context.Context, id string) (models.Event, error) {
	if v, ok := c.events.Get(id); ok {
		return v.(models.Event), nil
	}
	e, err := c.inner.Get(ctx, id)
	if err != nil {
		return models.Event{}, err
	}
	c.events.Add(id, e)
	return e, nil
}

// FindSession serves sessionID from cache, loading it on a miss.
func (c *Cached) FindSession(ctx context.Context, sessionID string) (models.Event, models.EventSession, error) {
	if v, ok := c.sessions.Get(sessionID); ok {
		hit := v.(sessionHit)
		return hit.event, hit.session, nil
	}
	e, s, err := c.inner.FindSession(ctx, sessionID)
	if err != nil {
		return models.Event{}, models.EventSession{}, err
	}
	c.sessions.Add(sessionID, sessionHit{event: e, session: s})
	return e, s, nil
}

// Purge drops every cached record.
func (c *Cached) Purge() {
	c.events.Purge()
	c.sessions.Purge()
}
