// Package api exposes the trading journal over HTTP. All endpoints speak
// JSON; errors are mapped to a status code plus an {"error": ...} payload at
// this boundary and never propagate uncaught.
package api

import (
	"bufio"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"trading-journal/internal/journal"
	"trading-journal/internal/marketcap"
	"trading-journal/internal/observability"
	"trading-journal/internal/stats"
	"trading-journal/internal/storage"
)

// Server holds the journal components behind the HTTP surface.
type Server struct {
	journal *journal.Service
	stats   *stats.Aggregator
	markets *marketcap.Client
	hub     *Hub
	metrics *observability.Metrics
	logger  *log.Logger

	// loc is the timezone "today" is derived in for /statistics.
	loc     *time.Location
	now     func() time.Time
	started time.Time
}

// NewServer wires the HTTP surface. loc may be nil for UTC.
func NewServer(
	svc *journal.Service,
	agg *stats.Aggregator,
	markets *marketcap.Client,
	metrics *observability.Metrics,
	logger *log.Logger,
	loc *time.Location,
) *Server {
	if loc == nil {
		loc = time.UTC
	}
	return &Server{
		journal: svc,
		stats:   agg,
		markets: markets,
		hub:     NewHub(logger, metrics),
		metrics: metrics,
		logger:  logger,
		loc:     loc,
		now:     time.Now,
		started: time.Now(),
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

// Handler returns the routed and instrumented HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", observability.Handler())

	mux.HandleFunc("GET /status", s.handleStatus)

	mux.HandleFunc("GET /daily-schedule", s.handleGetSchedule)
	mux.HandleFunc("POST /daily-schedule", s.handleUpsertSchedule)
	mux.HandleFunc("GET /trading-sessions", s.handleListSessions)
	mux.HandleFunc("POST /trading-sessions", s.handleRecordSession)
	mux.HandleFunc("PUT /trading-sessions/{id}", s.handleUpdateSession)
	mux.HandleFunc("GET /statistics", s.handleStatistics)
	mux.HandleFunc("GET /required-minimum", s.handleRequiredMinimum)

	mux.HandleFunc("GET /market-caps", s.handleMarketCaps)
	mux.HandleFunc("GET /ws", s.handleWS)

	return s.instrument(mux)
}

// instrument records request counts and durations per route pattern.
func (s *Server) instrument(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		mux.ServeHTTP(rec, r)

		_, route := mux.Handler(r)
		if route == "" {
			route = "unmatched"
		}
		s.metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.metrics.HTTPRequestSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// statusRecorder captures the response status for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack passes through to the underlying writer so the websocket upgrade
// works behind the instrumentation wrapper.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hj.Hijack()
}

// StatusResponse is the JSON response for the /status endpoint.
type StatusResponse struct {
	Status    string    `json:"status"`
	Uptime    string    `json:"uptime"`
	StartedAt time.Time `json:"started_at"`
	WSClients int       `json:"ws_clients"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, StatusResponse{
		Status:    "running",
		Uptime:    time.Since(s.started).String(),
		StartedAt: s.started,
		WSClients: s.hub.Clients(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

// writeError maps an error to its HTTP status and JSON payload.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *journal.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Msg})
	case errors.Is(err, storage.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, storage.ErrConflict):
		s.writeJSON(w, http.StatusConflict, map[string]string{"error": "a session already exists for that date and hour"})
	default:
		s.logger.Printf("internal error: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
