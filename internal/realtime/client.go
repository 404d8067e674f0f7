package realtime

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/eventhub/backend/internal/errs"
	"github.com/eventhub/backend/internal/live"
	"github.com/eventhub/backend/internal/middleware"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // allow all origins in dev; restrict in production
	},
}

// WSMessage is the WebSocket message envelope.
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// errorPayload is sent back to the connection whose action failed.
type errorPayload struct {
	Error  string            `json:"error"`
	Status int               `json:"status"`
	Fields []errs.FieldError `json:"fields,omitempty"`
}

// Client represents a single WebSocket connection of a viewer to one session panel.
type Client struct {
	ID        string
	SessionID string
	Viewer    models.User
	Room      string
	hub       *Hub
	panels    *live.Manager
	conn      *websocket.Conn
	send      chan WSMessage
	logger    *zap.Logger
}

// ServeWs handles GET /ws?session_id=&token=: it authenticates the token, opens the viewer's
// panel, upgrades the connection and runs the client loop.
func ServeWs(hub *Hub, panels *live.Manager, tokens middleware.TokenParser, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session_id")
		token := c.Query("token")
		if sessionID == "" || token == "" {
			response.BadRequest(c, "session_id and token required")
			return
		}
		viewer, err := tokens.Parse(token)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			return
		}
		panel, err := panels.Open(c.Request.Context(), sessionID, viewer)
		if err != nil {
			response.Error(c, err)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &Client{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Viewer:    viewer,
			Room:      RoomKey(sessionID, viewer.ID),
			hub:       hub,
			panels:    panels,
			conn:      conn,
			send:      make(chan WSMessage, 256),
			logger:    logger,
		}
		hub.Register(client)
		hub.SendToClient(client.Room, client.ID, EventPanelState, panel.Snapshot())
		go client.writePump()
		client.readPump(c)
	}
}

func (c *Client) readPump(gc *gin.Context) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))
		return nil
	})

	sendToMe := func(event string, payload interface{}) {
		c.hub.SendToClient(c.Room, c.ID, event, payload)
	}
	sendError := func(err error) {
		p := errorPayload{Error: err.Error(), Status: response.Status(err)}
		if ve, ok := errs.AsValidation(err); ok {
			p.Fields = ve.Fields
		}
		if p.Status == http.StatusInternalServerError {
			c.logger.Error("panel action failed", zap.Error(err), zap.String("client_id", c.ID))
			p.Error = "internal server error"
		}
		sendToMe(EventError, p)
	}

	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			break
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))

		switch msg.Event {
		case EventSync:
			panel, err := c.panels.Open(gc.Request.Context(), c.SessionID, c.Viewer)
			if err != nil {
				sendError(err)
				continue
			}
			sendToMe(EventPanelState, panel.Snapshot())
		case EventAction:
			var a live.Action
			if err := json.Unmarshal(msg.Data, &a); err != nil {
				sendError(errs.Invalid("data", "Malformed action"))
				continue
			}
			// Success is delivered as panel_state to every connection of this viewer by the manager.
			if _, err := c.panels.Apply(gc.Request.Context(), c.SessionID, c.Viewer, a); err != nil {
				sendError(err)
			}
		default:
			// ignore
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(PingInterval * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
