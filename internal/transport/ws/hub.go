package ws

import (
	"encoding/json"
	"sync"

	"mindwell/internal/logger"
	"mindwell/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgRiskAlert MessageType = "risk_alert"
	MsgConnected MessageType = "connected"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection is one staff member's alert feed
type Connection struct {
	UserID string
	Role   model.Role
	Send   chan []byte
	Hub    *Hub
}

// Hub fans risk alerts out to connected staff.
// Registration and broadcast are serialized in run.
type Hub struct {
	conns map[*Connection]struct{}
	mu    sync.RWMutex
	log   *logger.Logger

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan []byte
	done       chan struct{}
	stopOnce   sync.Once
}

// NewHub creates a new WebSocket hub
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	h := &Hub{
		conns:      make(map[*Connection]struct{}),
		log:        log,
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = struct{}{}
			h.mu.Unlock()
			h.log.Info("staff connected to alert feed", "user_id", conn.UserID, "role", conn.Role)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.conns[conn]; ok {
				delete(h.conns, conn)
				close(conn.Send)
				h.log.Info("staff disconnected from alert feed", "user_id", conn.UserID)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.conns {
				select {
				case conn.Send <- data:
				default:
					h.log.Warn("dropping alert for slow connection", "user_id", conn.UserID)
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for conn := range h.conns {
				delete(h.conns, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Stop closes every connection and ends the run loop
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Count returns the number of connected staff
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// BroadcastToStaff queues a message for every staff connection (implements service.Broadcaster).
// It never blocks the caller; when the queue is full the alert is dropped and logged.
func (h *Hub) BroadcastToStaff(msgType string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("failed to encode alert", "error", err)
		return
	}
	data, _ := json.Marshal(&Message{Type: MessageType(msgType), Payload: body})
	select {
	case h.broadcast <- data:
	default:
		h.log.Warn("alert queue full, dropping message", "type", msgType)
	}
}
