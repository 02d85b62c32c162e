package api

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"trading-journal/internal/observability"
)

// Event is pushed to websocket clients after every successful journal write
// so the dashboard can refresh without polling.
type Event struct {
	Type string `json:"type"` // "schedule" or "session"
	Date string `json:"date"`
}

// Hub tracks connected websocket clients and fans events out to them.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	logger  *log.Logger
	metrics *observability.Metrics
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger,
		metrics: metrics,
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends the event to every connected client. Clients that fail the
// write are dropped; a slow or dead dashboard must not block journal writes.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(ev); err != nil {
			h.logger.Printf("drop websocket client: %v", err)
			conn.Close()
			delete(h.clients, conn)
			h.metrics.WSClients.Dec()
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
	h.metrics.WSClients.Inc()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, exists := h.clients[conn]; exists {
		delete(h.clients, conn)
		h.metrics.WSClients.Dec()
	}
	h.mu.Unlock()
	conn.Close()
}

var upgrader = websocket.Upgrader{
	// The dashboard is served from a different origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWS upgrades the connection and keeps it registered until the client
// goes away. Inbound messages are read and discarded; the feed is one-way.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("websocket upgrade: %v", err)
		return
	}

	s.hub.add(conn)

	go func() {
		defer s.hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
