package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/eventhub/backend/pkg/queue"
	"github.com/eventhub/backend/pkg/storage"
)

// JobSource is the queue side the processor consumes. *queue.Queue satisfies it.
type JobSource interface {
	Dequeue(ctx context.Context) (*queue.Job, error)
	Retry(ctx context.Context, job *queue.Job) error
}

// ReceiptStore persists rendered receipts. *storage.S3 satisfies it.
type ReceiptStore interface {
	UploadReceipt(ctx context.Context, key string, body io.Reader, size int64) (string, error)
}

// Receipt is the confirmation document rendered for each ticket.
type Receipt struct {
	TicketID   string    `json:"ticket_id"`
	TicketType string    `json:"ticket_type"`
	Amount     int       `json:"amount"`
	EventID    string    `json:"event_id"`
	EventTitle string    `json:"event_title"`
	OwnerID    string    `json:"owner_id"`
	OwnerEmail string    `json:"owner_email"`
	QRCode     string    `json:"qr_code"`
	IssuedAt   time.Time `json:"issued_at"`
	RenderedAt time.Time `json:"rendered_at"`
}

// TicketProcessor processes ticket confirmation jobs: render a receipt, upload it to S3 when
// a receipt store is configured, otherwise log it.
type TicketProcessor struct {
	jobs     JobSource
	receipts ReceiptStore
	logger   *zap.Logger
	backoff  time.Duration
	now      func() time.Time
}

// NewTicketProcessor creates a ticket confirmation processor. receipts may be nil.
func NewTicketProcessor(jobs JobSource, receipts ReceiptStore, logger *zap.Logger) *TicketProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketProcessor{jobs: jobs, receipts: receipts, logger: logger, backoff: queue.RetryBackoff, now: time.Now}
}

// RenderReceipt builds the receipt document for a confirmation payload.
func RenderReceipt(p queue.TicketConfirmationPayload, renderedAt time.Time) ([]byte, error) {
	return json.MarshalIndent(Receipt{
		TicketID:   p.TicketID,
		TicketType: p.TicketType,
		Amount:     p.Price,
		EventID:    p.EventID,
		EventTitle: p.EventTitle,
		OwnerID:    p.OwnerID,
		OwnerEmail: p.OwnerEmail,
		QRCode:     p.QRCode,
		IssuedAt:   p.IssuedAt,
		RenderedAt: renderedAt.UTC(),
	}, "", "  ")
}

// Process executes one ticket confirmation job.
func (p *TicketProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeTicketConfirmation {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.TicketConfirmationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if payload.TicketID == "" || payload.EventID == "" {
		return fmt.Errorf("incomplete payload for job %s", job.ID)
	}

	body, err := RenderReceipt(payload, p.now())
	if err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}
	if p.receipts == nil {
		p.logger.Info("ticket confirmed", zap.String("ticket_id", payload.TicketID), zap.String("owner_email", payload.OwnerEmail), zap.ByteString("receipt", body))
		return nil
	}

	key := storage.ReceiptKey(payload.EventID, payload.TicketID)
	url, err := p.receipts.UploadReceipt(ctx, key, bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return fmt.Errorf("s3 upload: %w", err)
	}
	p.logger.Info("ticket receipt uploaded", zap.String("ticket_id", payload.TicketID), zap.String("s3_key", key), zap.String("url", url))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *TicketProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("ticket worker stopping")
			return
		default:
		}

		job, err := p.jobs.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			p.sleep(ctx)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.jobs.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			p.sleep(ctx)
		}
	}
}

func (p *TicketProcessor) sleep(ctx context.Context) {
	t := time.NewTimer(p.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
