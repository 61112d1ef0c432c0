// Package progress streams batch processing updates to browser clients over
// WebSocket. One hub fans every event out to all connected clients; slow
// clients are dropped rather than allowed to stall a broadcast.
package progress

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Message type constants
const (
	TypeConnection = "connection"
	TypeProgress   = "progress"
	TypeComplete   = "complete"
	TypeError      = "error"
)

// Stage identifiers reported while a batch runs
const (
	StageReading    = "reading"
	StageProcessing = "processing"
	StageExporting  = "exporting"
)

// Hub maintains the set of active clients and broadcasts events to them
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu     sync.RWMutex
	logger *slog.Logger

	totalConnections int64
	messagesSent     int64

	quit    chan struct{}
	running bool
}

// NewHub creates a new Hub instance
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.With(slog.String("component", "progress.hub")),
		quit:       make(chan struct{}),
	}
}

// Start starts the hub's main loop
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.run()
}

// Stop shuts the hub down and disconnects every client
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	close(h.quit)
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()
}

func (h *Hub) run() {
	for {
		select {
		case <-h.quit:
			h.logger.Info("hub shutting down")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.totalConnections++
			h.mu.Unlock()

			h.logger.Info("client registered",
				slog.Int("total_clients", count),
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr))

			h.sendTo(client, envelope(TypeConnection, map[string]any{
				"status":    "connected",
				"client_id": client.id,
			}))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				count := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("client unregistered",
					slog.Int("total_clients", count),
					slog.String("client_id", client.id),
					slog.Duration("connection_duration", time.Since(client.connectedAt)))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			for _, client := range clients {
				select {
				case client.send <- message:
					h.messagesSent++
				default:
					h.mu.Lock()
					close(client.send)
					delete(h.clients, client)
					h.mu.Unlock()
					h.logger.Warn("client send buffer full, disconnecting",
						slog.String("client_id", client.id))
				}
			}
		}
	}
}

func (h *Hub) sendTo(client *Client, message []byte) {
	select {
	case client.send <- message:
	default:
		h.logger.Warn("failed to send message, client buffer full",
			slog.String("client_id", client.id))
	}
}

// BroadcastProgress reports stage progress for a running batch
func (h *Hub) BroadcastProgress(stage string, current, total int, message string) {
	percentage := 0.0
	if total > 0 {
		percentage = float64(current) / float64(total) * 100
	}
	h.broadcastJSON(envelope(TypeProgress, map[string]any{
		"stage":      stage,
		"current":    current,
		"total":      total,
		"percentage": percentage,
		"message":    message,
	}))
}

// BroadcastComplete reports a finished batch together with its stats
func (h *Hub) BroadcastComplete(kind string, stats any) {
	h.broadcastJSON(envelope(TypeComplete, map[string]any{
		"kind":  kind,
		"stats": stats,
	}))
}

// BroadcastError reports a failed batch
func (h *Hub) BroadcastError(stage, message string) {
	h.broadcastJSON(envelope(TypeError, map[string]any{
		"stage":   stage,
		"message": message,
	}))
}

func (h *Hub) broadcastJSON(message []byte) {
	h.mu.RLock()
	running := h.running
	h.mu.RUnlock()
	if !running {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("broadcast buffer full, dropping message")
	}
}

func envelope(msgType string, data any) []byte {
	payload, err := json.Marshal(map[string]any{
		"type":      msgType,
		"data":      data,
		"timestamp": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return []byte(`{"type":"error","data":{"message":"encode failure"}}`)
	}
	return payload
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
