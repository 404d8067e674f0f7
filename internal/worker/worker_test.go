package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/backend/pkg/queue"
)

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func (s *memStore) UploadReceipt(_ context.Context, key string, body io.Reader, _ int64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = make(map[string][]byte)
	}
	s.objects[key] = b
	return "s3://receipts/" + key, nil
}

type memJobs struct {
	mu      sync.Mutex
	pending []*queue.Job
	retried []*queue.Job
}

func (m *memJobs) Dequeue(ctx context.Context) (*queue.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		time.Sleep(time.Millisecond)
		return nil, ctx.Err()
	}
	job := m.pending[0]
	m.pending = m.pending[1:]
	return job, nil
}

func (m *memJobs) Retry(_ context.Context, job *queue.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job.Attempt++
	m.retried = append(m.retried, job)
	return nil
}

func ticketJob(t *testing.T) *queue.Job {
	t.Helper()
	job, err := queue.NewJob(queue.JobTypeTicketConfirmation, queue.TicketConfirmationPayload{
		TicketID:   "t-1",
		TicketType: "vip",
		Price:      249,
		EventID:    "5",
		EventTitle: "AI & Machine Learning Conference",
		OwnerID:    "3",
		OwnerEmail: "attendee@example.com",
	})
	require.NoError(t, err)
	return job
}

func TestProcessUploadsReceipt(t *testing.T) {
	store := &memStore{}
	p := NewTicketProcessor(&memJobs{}, store, nil)
	p.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, p.Process(context.Background(), ticketJob(t)))
	raw, ok := store.objects["receipts/5/t-1.json"]
	require.True(t, ok)
	var r Receipt
	require.NoError(t, json.Unmarshal(raw, &r))
	assert.Equal(t, 249, r.Amount)
	assert.Equal(t, "attendee@example.com", r.OwnerEmail)
	assert.Equal(t, 2025, r.RenderedAt.Year())
}

func TestProcessWithoutStoreLogs(t *testing.T) {
	p := NewTicketProcessor(&memJobs{}, nil, nil)
	assert.NoError(t, p.Process(context.Background(), ticketJob(t)))
}

func TestProcessRejectsBadJobs(t *testing.T) {
	p := NewTicketProcessor(&memJobs{}, &memStore{}, nil)
	ctx := context.Background()

	assert.Error(t, p.Process(ctx, &queue.Job{ID: "x", Type: "email"}))
	assert.Error(t, p.Process(ctx, &queue.Job{ID: "x", Type: queue.JobTypeTicketConfirmation, Payload: []byte("{")}))
	assert.Error(t, p.Process(ctx, &queue.Job{ID: "x", Type: queue.JobTypeTicketConfirmation, Payload: []byte("{}")}))
}

func TestRunRetriesFailedJobs(t *testing.T) {
	jobs := &memJobs{pending: []*queue.Job{ticketJob(t)}}
	p := NewTicketProcessor(jobs, &memStore{err: errors.New("s3 down")}, nil)
	p.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		jobs.mu.Lock()
		defer jobs.mu.Unlock()
		return len(jobs.retried) == 1
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, 1, jobs.retried[0].Attempt)
}
