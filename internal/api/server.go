package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"airport_traffic/internal/logging"
	"airport_traffic/internal/models"
	"airport_traffic/internal/projection"
	"airport_traffic/internal/scheduler"
	"airport_traffic/internal/sim"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/time/rate"
)

const msgpackContentType = "application/msgpack"

// Options tunes the router. Horizon is the projection horizon used when a
// request does not set one.
type Options struct {
	TickRate  rate.Limit
	TickBurst int
	Horizon   int
	Logger    *logging.Logger
}

type Server struct {
	engine  *sim.Engine
	sched   *scheduler.Scheduler
	limiter *rate.Limiter
	horizon int
	lg      *logging.Logger
}

// New constructs the HTTP router wired to the simulation engine. sched may
// be nil, in which case manual ticks go straight to the engine and the
// refresh routes report auto refresh as unavailable.
func New(engine *sim.Engine, sched *scheduler.Scheduler, opts Options) http.Handler {
	if opts.TickRate <= 0 {
		opts.TickRate = 1
	}
	if opts.TickBurst <= 0 {
		opts.TickBurst = 5
	}
	if opts.Horizon <= 0 {
		opts.Horizon = projection.DefaultHorizon
	}
	s := &Server{
		engine:  engine,
		sched:   sched,
		limiter: rate.NewLimiter(opts.TickRate, opts.TickBurst),
		horizon: opts.Horizon,
		lg:      opts.Logger.With(slog.String("component", "api")),
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/airports", s.handleAirports)
	r.Get("/airports/{code}", s.handleAirport)
	r.Get("/carriers", s.handleCarriers)

	r.Get("/flights", s.handleFlights)
	r.Post("/flights/regenerate", s.handleRegenerate)
	r.Post("/tick", s.handleTick)
	r.Get("/refresh", s.handleRefreshStatus)
	r.Post("/refresh", s.handleRefreshToggle)

	r.Route("/traffic", func(r chi.Router) {
		r.Get("/", s.handleTraffic)
		r.Get("/latest", s.handleTrafficLatest)
		r.Get("/totals", s.handleTrafficTotals)
		r.Get("/regions", s.handleTrafficRegions)
		r.Get("/impact", s.handleTrafficImpact)
	})
	r.Get("/projections", s.handleProjections)
	r.Get("/projections/combined", s.handleProjectionsCombined)

	r.Route("/stats", func(r chi.Router) {
		r.Get("/overview", s.handleOverview)
		r.Get("/carriers", s.handleCarrierStats)
		r.Get("/airports", s.handleAirportStats)
		r.Get("/delays", s.handleDelays)
		r.Get("/destinations", s.handleDestinations)
	})
	r.Get("/snapshot", s.handleSnapshot)

	return gzhttp.GzipHandler(r)
}

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the id assigned to the request by the router.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.lg.Info("request",
			slog.String("request_id", RequestID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("elapsed", time.Since(start)))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, X-Request-Id")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-Id")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func wantsMsgpack(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), msgpackContentType)
}

// writeResponse encodes v as JSON, or as MessagePack when the client asks
// for it. MessagePack reuses the json field names.
func writeResponse(w http.ResponseWriter, r *http.Request, status int, v any) {
	if wantsMsgpack(r) {
		w.Header().Set("Content-Type", msgpackContentType)
		w.WriteHeader(status)
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		_ = enc.Encode(v)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	writeResponse(w, r, http.StatusOK, v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeError maps domain errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidAirportCode):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrOutOfRange), errors.Is(err, models.ErrNoBaseline):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.lg.Error("request failed", slog.String("request_id", RequestID(r.Context())), slog.Any("error", err))
	}
	writeJSONError(w, status, err.Error())
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New("invalid " + name + ": " + v)
	}
	return n, nil
}

func dateParam(r *http.Request, name string, def time.Time) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, errors.New("invalid " + name + ": " + v)
	}
	return t, nil
}
