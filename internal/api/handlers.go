package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"trading-journal/internal/domain"
	"trading-journal/internal/journal"
)

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	sch, err := s.journal.GetSchedule(r.Context(), date)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// A missing schedule encodes as null, indistinguishable from "not yet
	// created". The caller treats null as no schedule, not as an error.
	s.writeJSON(w, http.StatusOK, sch)
}

func (s *Server) handleUpsertSchedule(w http.ResponseWriter, r *http.Request) {
	var in journal.ScheduleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, &journal.ValidationError{Msg: "invalid JSON body"})
		return
	}

	sch, err := s.journal.UpsertSchedule(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.metrics.SchedulesUpserted.Inc()
	s.hub.Broadcast(Event{Type: "schedule", Date: sch.Date})

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"id":       sch.Date,
		"schedule": sch,
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	sessions, err := s.journal.ListSessions(r.Context(), date)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}

	s.writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleRecordSession(w http.ResponseWriter, r *http.Request) {
	var in journal.SessionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, &journal.ValidationError{Msg: "invalid JSON body"})
		return
	}

	sess, err := s.journal.RecordSession(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.metrics.SessionsRecorded.Inc()
	if sess.Penalty > 0 {
		s.metrics.PenaltiesApplied.Inc()
	}
	s.hub.Broadcast(Event{Type: "session", Date: sess.Date})

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"id":      sess.ID,
	})
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in journal.SessionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, &journal.ValidationError{Msg: "invalid JSON body"})
		return
	}

	sess, err := s.journal.UpdateSession(r.Context(), id, in)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.metrics.SessionsUpdated.Inc()
	if sess.Penalty > 0 {
		s.metrics.PenaltiesApplied.Inc()
	}
	s.hub.Broadcast(Event{Type: "session", Date: sess.Date})

	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	today := s.now().In(s.loc).Format("2006-01-02")

	statistics, err := s.stats.Compute(r.Context(), today)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, statistics)
}

// handleRequiredMinimum answers the profit floor the dashboard shows for an
// upcoming hour: the plain KPI target, or the loss-recovery floor when the
// preceding hour closed negative.
func (s *Server) handleRequiredMinimum(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date := q.Get("date")
	if date == "" {
		s.writeError(w, &journal.ValidationError{Msg: "date parameter required"})
		return
	}
	hour, err := strconv.Atoi(q.Get("hour"))
	if err != nil || hour < 0 || hour > 23 {
		s.writeError(w, &journal.ValidationError{Msg: "hour must be an integer in [0,23]"})
		return
	}
	kpi, err := strconv.ParseFloat(q.Get("kpi"), 64)
	if err != nil || kpi < 0 {
		s.writeError(w, &journal.ValidationError{Msg: "kpi must be a non-negative number"})
		return
	}

	minimum, err := s.journal.SuggestedMinimum(r.Context(), date, hour, kpi)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]float64{"required_minimum": minimum})
}

func (s *Server) handleMarketCaps(w http.ResponseWriter, r *http.Request) {
	count := 50
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 250 {
			s.writeError(w, &journal.ValidationError{Msg: "count must be an integer in [1,250]"})
			return
		}
		count = n
	}

	assets, synthetic := s.markets.TopAssets(r.Context(), count)
	if synthetic {
		s.metrics.MarketCapFallbacks.Inc()
	}

	s.writeJSON(w, http.StatusOK, assets)
}
