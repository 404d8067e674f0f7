package live

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventhub/backend/internal/auth"
	"github.com/eventhub/backend/internal/catalog"
	"github.com/eventhub/backend/internal/errs"
	"github.com/eventhub/backend/internal/models"
)

type recordingPublisher struct {
	mu     sync.Mutex
	states []State
	err    error
}

func (r *recordingPublisher) PublishPanel(_ context.Context, st State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, st)
	return r.err
}

func newTestManager(pub Publisher) *Manager {
	return NewManager(catalog.NewMemory(catalog.SeedEvents()), pub, nil)
}

func TestManagerOpenUnknownSession(t *testing.T) {
	m := newTestManager(nil)
	_, err := m.Open(context.Background(), "999", viewer)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestManagerPanelsArePerViewer(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	m := newTestManager(pub)
	other := models.User{ID: "2", Name: "Speaker User", Role: models.RoleSpeaker}

	st, err := m.Apply(ctx, "101", viewer, Action{Type: ActionPostChat, Text: "hi"})
	require.NoError(t, err)
	assert.Len(t, st.Chat, 5)

	p, err := m.Open(ctx, "101", other)
	require.NoError(t, err)
	assert.Len(t, p.Snapshot().Chat, 4, "other viewers never see the message")

	p, err = m.Open(ctx, "102", viewer)
	require.NoError(t, err)
	assert.Len(t, p.Snapshot().Chat, 4, "panels are per session")
	assert.Equal(t, 3, m.Len())

	require.Len(t, pub.states, 1)
	assert.Equal(t, "101", pub.states[0].SessionID)
	assert.Equal(t, viewer.ID, pub.states[0].ViewerID)
}

func TestManagerSignedUpViewersVoteSeparately(t *testing.T) {
	ctx := context.Background()
	dir, err := auth.NewDirectory(auth.DefaultUsers(), bcrypt.MinCost)
	require.NoError(t, err)
	alice, err := dir.SignUp(ctx, "Alice", "alice@example.com", "secret1", models.RoleAttendee)
	require.NoError(t, err)
	bob, err := dir.SignUp(ctx, "Bob", "bob@example.com", "secret1", models.RoleAttendee)
	require.NoError(t, err)
	require.NotEqual(t, alice.ID, bob.ID)

	m := newTestManager(nil)
	st, err := m.Apply(ctx, "101", alice, Action{Type: ActionVotePoll, OptionID: "a"})
	require.NoError(t, err)
	require.NotNil(t, st.Poll)
	assert.Equal(t, "a", *st.Poll.UserVote)

	st, err = m.Apply(ctx, "101", bob, Action{Type: ActionVotePoll, OptionID: "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", *st.Poll.UserVote)
	assert.Equal(t, 2, m.Len())
}

func TestManagerApplyFailureDoesNotPublish(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	m := newTestManager(pub)

	_, err := m.Apply(ctx, "101", viewer, Action{Type: ActionVotePoll, OptionID: "d"})
	require.NoError(t, err)
	_, err = m.Apply(ctx, "101", viewer, Action{Type: ActionVotePoll, OptionID: "a"})
	assert.ErrorIs(t, err, errs.ErrAlreadyVoted)
	_, err = m.Apply(ctx, "101", viewer, Action{Type: ActionPostChat, Text: " "})
	assert.ErrorIs(t, err, errs.ErrEmptyContent)

	assert.Len(t, pub.states, 1)
}

func TestManagerPublishErrorIsNotFatal(t *testing.T) {
	m := newTestManager(&recordingPublisher{err: errors.New("redis down")})
	st, err := m.Apply(context.Background(), "101", viewer, Action{Type: ActionToggleMic})
	require.NoError(t, err)
	assert.True(t, st.MicEnabled)
}

func TestManagerCloseResetsPanel(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil)

	_, err := m.Apply(ctx, "101", viewer, Action{Type: ActionToggleCamera})
	require.NoError(t, err)
	m.Close("101", viewer.ID)
	assert.Equal(t, 0, m.Len())

	p, err := m.Open(ctx, "101", viewer)
	require.NoError(t, err)
	assert.False(t, p.Snapshot().CameraEnabled)
}

func TestManagerConcurrentUpvotes(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(&recordingPublisher{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Apply(ctx, "201", viewer, Action{Type: ActionUpvoteQuestion, QuestionID: "2"})
		}()
	}
	wg.Wait()

	p, err := m.Open(ctx, "201", viewer)
	require.NoError(t, err)
	assert.Equal(t, 53, p.Snapshot().Questions[1].Upvotes)
}
