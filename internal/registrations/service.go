// Package registrations issues event tickets and lists the tickets a user holds.
package registrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eventhub/backend/internal/errs"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/pkg/kvstore"
	"github.com/eventhub/backend/pkg/queue"
)

const keyPrefix = "ticket:"

// EventGetter looks up catalog events. catalog.Source satisfies it.
type EventGetter interface {
	Get(ctx context.Context, id string) (models.Event, error)
}

// Enqueuer schedules ticket confirmations. *queue.Queue satisfies it.
type Enqueuer interface {
	EnqueueTicketConfirmation(ctx context.Context, payload queue.TicketConfirmationPayload) error
}

// Service issues tickets and stores them in a key-value store.
type Service struct {
	events EventGetter
	kv     kvstore.Store
	jobs   Enqueuer
	logger *zap.Logger
	now    func() time.Time

	mu sync.Mutex
}

// NewService creates a registration service. jobs may be nil when no worker queue is configured.
func NewService(events EventGetter, kv kvstore.Store, jobs Enqueuer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{events: events, kv: kv, jobs: jobs, logger: logger, now: time.Now}
}

func ticketKey(ownerID, eventID string) string {
	return keyPrefix + ownerID + ":" + eventID
}

// QRPayload is the string encoded in a ticket's QR code.
func QRPayload(t models.Ticket) string {
	return strings.Join([]string{"eventhub", t.EventID, t.ID, t.OwnerID}, ":")
}

// Register issues a ticket of the given type for eventID. Only published events accept
// registrations, and a user holds at most one ticket per event.
func (s *Service) Register(ctx context.Context, u models.User, eventID string, tt models.TicketType) (models.Ticket, error) {
	e, err := s.events.Get(ctx, eventID)
	if err != nil {
		return models.Ticket{}, err
	}
	if !e.IsPublished {
		return models.Ticket{}, errs.NotFound("event", eventID)
	}

	var price int
	switch tt {
	case models.TicketGeneral:
		price = e.Prices.General
	case models.TicketVIP:
		price = e.Prices.VIP
	default:
		return models.Ticket{}, errs.Invalid("ticket_type", "Ticket type must be general or vip")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := ticketKey(u.ID, e.ID)
	if _, err := s.kv.Get(ctx, key); err == nil {
		return models.Ticket{}, fmt.Errorf("ticket for event %q: %w", e.ID, errs.ErrConflict)
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		return models.Ticket{}, fmt.Errorf("read ticket: %w", err)
	}

	t := models.Ticket{
		ID:           uuid.New().String(),
		Type:         tt,
		Price:        price,
		EventID:      e.ID,
		EventTitle:   e.Title,
		OwnerID:      u.ID,
		OwnerEmail:   u.Email,
		PurchaseDate: s.now().UTC(),
	}
	t.QRCode = QRPayload(t)

	raw, err := json.Marshal(t)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("marshal ticket: %w", err)
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		return models.Ticket{}, fmt.Errorf("write ticket: %w", err)
	}
	s.logger.Info("ticket issued", zap.String("ticket_id", t.ID), zap.String("event_id", t.EventID), zap.String("owner_id", t.OwnerID))

	if s.jobs != nil {
		payload := queue.TicketConfirmationPayload{
			TicketID:   t.ID,
			TicketType: string(t.Type),
			Price:      t.Price,
			EventID:    t.EventID,
			EventTitle: t.EventTitle,
			OwnerID:    t.OwnerID,
			OwnerEmail: t.OwnerEmail,
			QRCode:     t.QRCode,
			IssuedAt:   t.PurchaseDate,
		}
		if err := s.jobs.EnqueueTicketConfirmation(ctx, payload); err != nil {
			s.logger.Warn("enqueue ticket confirmation failed", zap.Error(err), zap.String("ticket_id", t.ID))
		}
	}
	return t, nil
}

// ListForOwner returns the tickets held by ownerID, ordered by event id.
func (s *Service) ListForOwner(ctx context.Context, ownerID string) ([]models.Ticket, error) {
	raws, err := s.kv.List(ctx, keyPrefix+ownerID+":")
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	tickets := make([]models.Ticket, 0, len(raws))
	for _, raw := range raws {
		var t models.Ticket
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			s.logger.Warn("skipping unreadable ticket", zap.Error(err), zap.String("owner_id", ownerID))
			continue
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
