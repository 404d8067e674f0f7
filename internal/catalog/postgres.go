package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventhub/backend/internal/errs"
	"github.com/eventhub/backend/internal/models"
)

// Postgres reads the catalog from the events table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a catalog source over pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const eventColumns = `id, title, description, start_date, end_date, location, image_url, organizer,
	price, vip_price, tags, session_count, attendees, status, is_published, speakers, schedule`

func scanEvent(row pgx.Row) (models.Event, error) {
	var (
		e                  models.Event
		status             string
		speakers, schedule []byte
	)
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.Location, &e.ImageURL, &e.Organizer,
		&e.Prices.General, &e.Prices.VIP, &e.Tags, &e.SessionCount, &e.Attendees, &status, &e.IsPublished, &speakers, &schedule)
	if err != nil {
		return models.Event{}, err
	}
	e.Status = models.EventStatus(status)
	if len(speakers) > 0 {
		if err := json.Unmarshal(speakers, &e.Speakers); err != nil {
			return models.Event{}, fmt.Errorf("decode speakers of event %s: %w", e.ID, err)
		}
	}
	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &e.Schedule); err != nil {
			return models.Event{}, fmt.Errorf("decode schedule of event %s: %w", e.ID, err)
		}
	}
	return e, nil
}

// List returns every event ordered by catalog position.
func (p *Postgres) List(ctx context.Context) ([]models.Event, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var list []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Get returns the event with the given id.
func (p *Postgres) Get(ctx context.Context, id string) (models.Event, error) {
	e, err := scanEvent(p.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Event{}, errs.NotFound("event", id)
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("get event %s: %w", id, err)
	}
	return e, nil
}

// FindSession finds the event whose schedule contains sessionID.
func (p *Postgres) FindSession(ctx context.Context, sessionID string) (models.Event, models.EventSession, error) {
	const q = `SELECT ` + eventColumns + ` FROM events
		WHERE schedule @> jsonb_build_array(jsonb_build_object('sessions', jsonb_build_array(jsonb_build_object('id', $1::text))))
		LIMIT 1`
	e, err := scanEvent(p.pool.QueryRow(ctx, q, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Event{}, models.EventSession{}, errs.NotFound("session", sessionID)
	}
	if err != nil {
		return models.Event{}, models.EventSession{}, fmt.Errorf("find session %s: %w", sessionID, err)
	}
	return findSession([]models.Event{e}, sessionID)
}

// Seed upserts events, keeping their slice order as catalog position.
func (p *Postgres) Seed(ctx context.Context, events []models.Event) error {
	const q = `INSERT INTO events (` + eventColumns + `, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, description = EXCLUDED.description,
			start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date,
			location = EXCLUDED.location, image_url = EXCLUDED.image_url, organizer = EXCLUDED.organizer,
			price = EXCLUDED.price, vip_price = EXCLUDED.vip_price, tags = EXCLUDED.tags,
			session_count = EXCLUDED.session_count, attendees = EXCLUDED.attendees,
			status = EXCLUDED.status, is_published = EXCLUDED.is_published,
			speakers = EXCLUDED.speakers, schedule = EXCLUDED.schedule, position = EXCLUDED.position`

	batch := &pgx.Batch{}
	for i, e := range events {
		speakers, err := json.Marshal(orEmpty(e.Speakers))
		if err != nil {
			return fmt.Errorf("encode speakers of event %s: %w", e.ID, err)
		}
		schedule, err := json.Marshal(orEmpty(e.Schedule))
		if err != nil {
			return fmt.Errorf("encode schedule of event %s: %w", e.ID, err)
		}
		batch.Queue(q, e.ID, e.Title, e.Description, e.StartDate, e.EndDate, e.Location, e.ImageURL, e.Organizer,
			e.Prices.General, e.Prices.VIP, e.Tags, e.SessionCount, e.Attendees, string(e.Status), e.IsPublished,
			string(speakers), string(schedule), i)
	}
	if err := p.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}
	return nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
