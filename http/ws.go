package http

import (
	"encoding/json"
	"net/http"
	"time"

	"croprec/recommend"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Message is the server to client envelope.
type Message struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
	ID        string          `json:"id"`
}

// ClientMessage is an input change or a submit from the page script.
type ClientMessage struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// wsClient is one live page. Its Session is only touched by readPump.
type wsClient struct {
	conn     *websocket.Conn
	send     chan []byte
	done     chan struct{}
	clientID string
	session  *recommend.Session
	logger   *zap.Logger
}

// handleWebSocket starts a live session. Query parameters seed the controls
// the same way they do for the page, so the script can hand over the values
// the page was rendered with.
func (h *Handlers) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{
		conn:     conn,
		send:     make(chan []byte, 16),
		done:     make(chan struct{}),
		clientID: uuid.NewString(),
		session:  recommend.NewSession(h.service),
		logger:   h.logger,
	}
	applyForm(client.session, r.URL.Query())
	client.logger.Debug("websocket client connected", zap.String("client_id", client.clientID))

	go client.writePump()
	client.queue("view", client.session.View())
	client.readPump()
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("websocket write failed", zap.String("client_id", c.clientID), zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump handles one event at a time, so every reply reflects the
// events before it.
func (c *wsClient) readPump() {
	defer func() {
		close(c.send)
		c.logger.Debug("websocket client disconnected", zap.String("client_id", c.clientID))
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read failed", zap.String("client_id", c.clientID), zap.Error(err))
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.queue("error", map[string]string{"error": "invalid message"})
			continue
		}
		c.handleClientMessage(msg)
	}
}

func (c *wsClient) handleClientMessage(msg ClientMessage) {
	switch msg.Type {
	case "input":
		id, ok := recommend.LookupField(msg.Field)
		if !ok {
			c.queue("error", map[string]string{"error": "unknown field " + msg.Field})
			return
		}
		v, err := id.Spec().Parse(msg.Value)
		if err != nil {
			// the control keeps its value; resend it so the page reverts
			c.queue("view", c.session.View())
			return
		}
		c.queue("view", c.session.Handle(recommend.Input(id, v)))
	case "submit":
		c.queue("view", c.session.Handle(recommend.SubmitEvent()))
	default:
		c.queue("error", map[string]string{"error": "unknown message type " + msg.Type})
	}
}

func (c *wsClient) queue(kind string, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		c.logger.Error("encode websocket payload", zap.Error(err))
		return
	}
	message, err := json.Marshal(Message{
		Type:      kind,
		Timestamp: time.Now(),
		Data:      body,
		ID:        uuid.NewString(),
	})
	if err != nil {
		c.logger.Error("encode websocket message", zap.Error(err))
		return
	}
	select {
	case c.send <- message:
	case <-c.done:
	}
}
