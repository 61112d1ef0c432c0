package progress

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// Client is one WebSocket subscriber of the progress stream
type Client struct {
	id          string
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	logger      *slog.Logger
	remoteAddr  string
	connectedAt time.Time
}

// Upgrader configures the WebSocket handshake. Origin checking is delegated
// to the CORS middleware in front of the handler.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and registers the client with the hub
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) error {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		id:          uuid.New().String(),
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendBuffer),
		logger:      hub.logger.With(slog.String("component", "progress.client")),
		remoteAddr:  r.RemoteAddr,
		connectedAt: time.Now(),
	}
	hub.register <- client

	go client.writePump()
	go client.readPump()
	return nil
}

// readPump drains incoming frames so close and pong handling work. Client
// payloads are otherwise ignored.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("unexpected close",
					slog.String("client_id", c.id),
					slog.String("error", err.Error()))
			}
			return
		}
	}
}

// writePump pumps hub messages to the connection and keeps it alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
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
				c.logger.Error("write failed",
					slog.String("client_id", c.id),
					slog.String("error", err.Error()))
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
