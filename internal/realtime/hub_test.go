package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/backend/internal/auth"
	"github.com/eventhub/backend/internal/catalog"
	"github.com/eventhub/backend/internal/live"
	"github.com/eventhub/backend/internal/models"
)

var (
	attendee = models.User{ID: "3", Name: "Attendee User", Email: "attendee@example.com", Role: models.RoleAttendee}
	speaker  = models.User{ID: "2", Name: "Speaker User", Email: "speaker@example.com", Role: models.RoleSpeaker}
)

type testServer struct {
	*httptest.Server
	jwt *auth.JWTService
	hub *Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub(nil, nil, nil)
	mgr := live.NewManager(catalog.NewMemory(catalog.SeedEvents()), hub, nil)
	jwtSvc := auth.NewJWTService("test-secret", 1)

	r := gin.New()
	r.GET("/ws", ServeWs(hub, mgr, jwtSvc, nil))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, jwt: jwtSvc, hub: hub}
}

func (s *testServer) dial(t *testing.T, sessionID string, u models.User) *websocket.Conn {
	t.Helper()
	token, err := s.jwt.Generate(u)
	require.NoError(t, err)
	q := url.Values{"session_id": {sessionID}, "token": {token}}
	wsURL := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws?" + q.Encode()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readState(t *testing.T, conn *websocket.Conn) (string, live.State) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	var st live.State
	if msg.Event == EventPanelState {
		require.NoError(t, json.Unmarshal(msg.Data, &st))
	}
	return msg.Event, st
}

func send(t *testing.T, conn *websocket.Conn, event string, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(WSMessage{Event: event, Data: data}))
}

func TestServeWsPushesOnlyToViewer(t *testing.T) {
	s := newTestServer(t)

	first := s.dial(t, "101", attendee)
	second := s.dial(t, "101", attendee)
	other := s.dial(t, "101", speaker)
	for _, c := range []*websocket.Conn{first, second, other} {
		event, st := readState(t, c)
		require.Equal(t, EventPanelState, event)
		assert.Len(t, st.Chat, 4)
	}
	require.Eventually(t, func() bool { return s.hub.ConnectionCount(RoomKey("101", attendee.ID)) == 2 },
		time.Second, 10*time.Millisecond)

	send(t, first, EventAction, live.Action{Type: live.ActionPostChat, Text: "hello"})
	for _, c := range []*websocket.Conn{first, second} {
		event, st := readState(t, c)
		require.Equal(t, EventPanelState, event)
		require.Len(t, st.Chat, 5)
		assert.Equal(t, "hello", st.Chat[4].Content)
	}

	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var msg WSMessage
	assert.Error(t, other.ReadJSON(&msg), "another viewer receives nothing")
}

func TestServeWsReportsActionErrors(t *testing.T) {
	s := newTestServer(t)
	conn := s.dial(t, "102", attendee)
	_, _ = readState(t, conn)

	send(t, conn, EventAction, live.Action{Type: live.ActionVotePoll, OptionID: "a"})
	event, st := readState(t, conn)
	require.Equal(t, EventPanelState, event)
	assert.Equal(t, 61, st.Poll.TotalVotes)

	send(t, conn, EventAction, live.Action{Type: live.ActionVotePoll, OptionID: "b"})
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, EventError, msg.Event)
	var p errorPayload
	require.NoError(t, json.Unmarshal(msg.Data, &p))
	assert.Equal(t, http.StatusConflict, p.Status)

	send(t, conn, EventSync, nil)
	event, st = readState(t, conn)
	require.Equal(t, EventPanelState, event)
	assert.Equal(t, 61, st.Poll.TotalVotes)
}

func TestServeWsRejectsBeforeUpgrade(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Get(s.URL + "/ws?session_id=101")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(s.URL + "/ws?session_id=101&token=bogus")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := s.jwt.Generate(attendee)
	require.NoError(t, err)
	resp, err = http.Get(s.URL + "/ws?session_id=999&token=" + token)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

type slowSubscriber struct {
	started  chan struct{}
	release  chan struct{}
	canceled chan string
}

func (s *slowSubscriber) SubscribeRoom(room string, _ func(string, []byte)) (func(), error) {
	close(s.started)
	<-s.release
	return func() { s.canceled <- room }, nil
}

func newClient(hub *Hub, room, id string) *Client {
	return &Client{ID: id, Room: room, hub: hub, send: make(chan WSMessage, 4)}
}

func TestRegisterSubscribesWithoutBlockingHub(t *testing.T) {
	sub := &slowSubscriber{started: make(chan struct{}), release: make(chan struct{}), canceled: make(chan string, 1)}
	hub := NewHub(nil, nil, sub)
	room := RoomKey("101", attendee.ID)
	c := newClient(hub, room, "c1")

	done := make(chan struct{})
	go func() {
		hub.Register(c)
		close(done)
	}()
	<-sub.started

	delivered := make(chan struct{})
	go func() {
		hub.BroadcastToRoom(room, EventPanelState, map[string]string{"k": "v"})
		assert.Equal(t, 1, hub.ConnectionCount(room))
		close(delivered)
	}()
	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast waited for the redis subscription")
	}
	assert.Len(t, c.send, 1)

	close(sub.release)
	<-done
	hub.mu.RLock()
	_, subscribed := hub.subs[room]
	hub.mu.RUnlock()
	assert.True(t, subscribed)
}

func TestRegisterDropsSubscriptionOfEmptiedRoom(t *testing.T) {
	sub := &slowSubscriber{started: make(chan struct{}), release: make(chan struct{}), canceled: make(chan string, 1)}
	hub := NewHub(nil, nil, sub)
	room := RoomKey("101", speaker.ID)
	c := newClient(hub, room, "c1")

	done := make(chan struct{})
	go func() {
		hub.Register(c)
		close(done)
	}()
	<-sub.started
	hub.Unregister(c)
	close(sub.release)
	<-done

	select {
	case got := <-sub.canceled:
		assert.Equal(t, room, got)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription of an empty room was kept")
	}
	assert.Equal(t, 0, hub.ConnectionCount(room))
}
