package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ishqrisk/ishqrisk-backend/internal/logger"
	"github.com/ishqrisk/ishqrisk-backend/internal/realtime"
	"github.com/ishqrisk/ishqrisk-backend/internal/usecase/chat"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// inboundFrame is what connected clients may send over the socket. Chat
// messages themselves go through the REST endpoint; the socket only carries
// ephemeral signals.
type inboundFrame struct {
	Type     string `json:"type"`
	IsTyping bool   `json:"is_typing"`
}

// Client pumps broker events out to one websocket connection and typing
// signals back in.
type Client struct {
	conn      *websocket.Conn
	send      chan realtime.Event
	sessionID string
	userID    string
	chatUC    *chat.UseCase
}

func newClient(conn *websocket.Conn, sessionID, userID string, chatUC *chat.UseCase) *Client {
	return &Client{
		conn:      conn,
		send:      make(chan realtime.Event, 16),
		sessionID: sessionID,
		userID:    userID,
		chatUC:    chatUC,
	}
}

// readPump consumes inbound frames until the peer goes away. Its return is
// the signal to tear the connection down.
func (c *Client) readPump(ctx context.Context) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.L().Warn("websocket read failed", "session_id", c.sessionID, "error", err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}

		switch frame.Type {
		case "typing":
			if err := c.chatUC.Typing(ctx, c.sessionID, c.userID, frame.IsTyping); err != nil {
				logger.L().Warn("typing signal dropped", "session_id", c.sessionID, "error", err)
			}
		}
	}
}

// writePump serializes broker events onto the socket and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
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
