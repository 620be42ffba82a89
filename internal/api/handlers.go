package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"airport_traffic/internal/flights"
	"airport_traffic/internal/models"
	"airport_traffic/internal/projection"
	"airport_traffic/internal/stats"
	"airport_traffic/internal/traffic"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleAirports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.engine.Airports())
}

func (s *Server) handleAirport(w http.ResponseWriter, r *http.Request) {
	a, err := s.engine.Airport(chi.URLParam(r, "code"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, a)
}

func (s *Server) handleCarriers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.engine.CarrierActivity())
}

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := flights.Filter{
		Origin: strings.ToUpper(q.Get("origin")),
		Status: models.FlightStatus(q.Get("status")),
		Type:   models.FlightType(q.Get("type")),
	}
	if f.Status != "" && !f.Status.Valid() {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", f.Status))
		return
	}
	if f.Type != "" && !f.Type.Valid() {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown flight type %q", f.Type))
		return
	}
	if f.Origin != "" {
		if _, err := s.engine.Airport(f.Origin); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, r, f.Apply(s.engine.Flights()))
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	if err := s.engine.RegenerateFlights(req.Count); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, s.engine.Status())
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeJSONError(w, http.StatusTooManyRequests, "tick rate exceeded")
		return
	}
	var err error
	if s.sched != nil {
		err = s.sched.TriggerNow()
	} else {
		_, err = s.engine.Advance(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, s.engine.Status())
}

func (s *Server) handleRefreshStatus(w http.ResponseWriter, r *http.Request) {
	if s.sched == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "auto refresh not configured")
		return
	}
	writeJSON(w, r, s.sched.Status())
}

func (s *Server) handleRefreshToggle(w http.ResponseWriter, r *http.Request) {
	if s.sched == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "auto refresh not configured")
		return
	}
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	if err := s.sched.SetEnabled(*req.Enabled); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, s.sched.Status())
}

func (s *Server) handleTraffic(w http.ResponseWriter, r *http.Request) {
	records := s.engine.Traffic()
	if code := r.URL.Query().Get("airport"); code != "" {
		if _, err := s.engine.Airport(code); err != nil {
			s.writeError(w, r, err)
			return
		}
		records = traffic.ByAirport(records, code)
	}
	since, err := dateParam(r, "since", time.Time{})
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !since.IsZero() {
		records = traffic.Since(records, since)
	}
	writeJSON(w, r, records)
}

func (s *Server) handleTrafficLatest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, traffic.Latest(s.engine.Traffic()))
}

func (s *Server) handleTrafficTotals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, traffic.TotalsByMonth(s.engine.Traffic()))
}

func (s *Server) handleTrafficRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, traffic.ByRegion(traffic.Latest(s.engine.Traffic())))
}

// handleTrafficImpact compares the history against a baseline year, which
// defaults to the first year of the history.
func (s *Server) handleTrafficImpact(w http.ResponseWriter, r *http.Request) {
	records := s.engine.Traffic()
	first, ok := traffic.FirstYear(records)
	if !ok {
		s.writeError(w, r, models.ErrNoBaseline)
		return
	}
	baseline, err := intParam(r, "baseline", first)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	from, err := dateParam(r, "from", time.Time{})
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := dateParam(r, "to", time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	points, err := traffic.ImpactVsBaseline(records, baseline, from, to)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("baseline %d: %w", baseline, err))
		return
	}
	writeJSON(w, r, points)
}

func (s *Server) handleProjections(w http.ResponseWriter, r *http.Request) {
	h, err := intParam(r, "horizon", s.horizon)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	proj, err := s.engine.Projections(h)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, proj)
}

func (s *Server) handleProjectionsCombined(w http.ResponseWriter, r *http.Request) {
	h, err := intParam(r, "horizon", s.horizon)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	since, err := dateParam(r, "since", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	snap, err := s.engine.Snapshot(h)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, projection.Combine(snap.Traffic, snap.Projections, since))
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	snap, err := s.engine.Snapshot(0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, struct {
		Tick     int                 `json:"tick"`
		Metrics  stats.Overview      `json:"metrics"`
		Statuses []stats.StatusCount `json:"statuses"`
	}{
		Tick:     snap.Tick,
		Metrics:  stats.KeyMetrics(snap.Flights, snap.Traffic),
		Statuses: stats.StatusBreakdown(snap.Flights),
	})
}

func (s *Server) handleCarrierStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, stats.PerformanceByCarrier(s.engine.Registry().Carriers(), s.engine.Flights()))
}

func (s *Server) handleAirportStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.engine.Snapshot(0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, stats.AirportDetails(s.engine.Airports(), snap.Traffic, snap.Flights))
}

func (s *Server) handleDelays(w http.ResponseWriter, r *http.Request) {
	bins, err := intParam(r, "bins", stats.DefaultHistogramBins)
	if err != nil || bins <= 0 {
		writeJSONError(w, http.StatusBadRequest, "bins must be a positive integer")
		return
	}
	list := s.engine.Flights()
	writeJSON(w, r, struct {
		ByCarrier []stats.GroupMean `json:"by_carrier"`
		ByAirport []stats.GroupMean `json:"by_airport"`
		Histogram []stats.Bin       `json:"histogram"`
	}{
		ByCarrier: stats.MeanDelayByCarrier(list),
		ByAirport: stats.MeanDelayByAirport(list),
		Histogram: stats.DelayHistogram(list, bins),
	})
}

func (s *Server) handleDestinations(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", stats.DefaultTopDestinations)
	if err != nil || limit <= 0 {
		writeJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	writeJSON(w, r, stats.TopDestinations(s.engine.Flights(), limit))
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	h, err := intParam(r, "horizon", s.horizon)
	if err != nil || h < 0 {
		writeJSONError(w, http.StatusBadRequest, "horizon must be a non-negative integer")
		return
	}
	snap, err := s.engine.Snapshot(h)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, r, snap)
}
