// Package api serves an assessment session as a JSON HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/abhisek/mentor/internal/export"
	"github.com/abhisek/mentor/internal/forecast"
	"github.com/abhisek/mentor/internal/quiz"
	"github.com/abhisek/mentor/internal/workflow"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// maxEventBytes bounds a POSTed event body.
const maxEventBytes = 64 << 10

// Server exposes one workflow.Session over HTTP.
type Server struct {
	session *workflow.Session
	origins []string
	timeout time.Duration
	now     func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithAllowedOrigins sets the CORS origins. The default allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithRequestTimeout bounds each request, including generator calls.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a Server for session.
func New(session *workflow.Session, opts ...Option) *Server {
	s := &Server{
		session: session,
		origins: []string{"*"},
		timeout: 2 * time.Minute,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/state", s.getState)
		ar.Post("/events", s.postEvent)
		ar.Post("/reset", s.postReset)
		ar.Get("/log", s.getLog)
		ar.Get("/forecast", s.getForecast)
		ar.Get("/report", s.getReport)
	})
	return r
}

func (s *Server) getState(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, newStateView(s.session.ID(), s.session.State()))
}

func (s *Server) postEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	ev, err := workflow.DecodeEvent(body)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	s.apply(w, r, resolveAnswers(s.session.State(), ev))
}

func (s *Server) postReset(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, workflow.Reset{})
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request, ev workflow.Event) {
	st, err := s.session.Apply(r.Context(), ev)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			slog.Error("apply event", "event", ev.Name(), "error", err)
		}
		writeErr(w, status, err)
		return
	}
	if st.LastFailure != nil {
		slog.Warn("generation fell back", "event", ev.Name(), "step", st.LastFailure.Step, "error", st.LastFailure.Message)
	}
	respondJSON(w, http.StatusOK, newStateView(s.session.ID(), st))
}

func (s *Server) getLog(w http.ResponseWriter, _ *http.Request) {
	entries := s.session.Log()
	out := make([]logEntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, logEntryView{At: e.At, Event: e.Event.Name(), Detail: e.Event})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) getForecast(w http.ResponseWriter, _ *http.Request) {
	st := s.session.State()
	if !st.Diagnostic.Submitted {
		writeErr(w, http.StatusConflict, errors.New("forecast needs a submitted diagnostic quiz"))
		return
	}
	curve := st.RiskCurve()
	respondJSON(w, http.StatusOK, forecastView{
		Subject: st.Weakest,
		Curve:   curve,
		Summary: forecast.Summarize(curve),
		Rating:  forecast.Rate(st.Diagnostic.Percent()),
	})
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	exp, err := export.New(format)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	summary := export.Summarize(s.session.State(), s.now())
	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report%s"`, exp.Ext()))
	if err := exp.Export(w, summary); err != nil {
		// Headers are gone by now; the truncated body is all we can do.
		slog.Error("export report", "format", format, "error", err)
	}
}

// resolveAnswers maps letter or number selections in submit events onto
// option text using the questions currently on offer.
func resolveAnswers(st workflow.State, ev workflow.Event) workflow.Event {
	switch e := ev.(type) {
	case workflow.Submit:
		e.Answers = quiz.ResolveAnswers(st.Diagnostic.Questions, e.Answers)
		return e
	case workflow.SubmitDaily:
		if st.Daily != nil && st.Daily.Day == e.Day {
			e.Answers = quiz.ResolveAnswers(st.Daily.Questions, e.Answers)
		}
		return e
	case workflow.SubmitPost:
		e.Answers = quiz.ResolveAnswers(st.Post.Questions, e.Answers)
		return e
	}
	return ev
}

func statusFor(err error) int {
	var invalid *workflow.InvalidActionError
	switch {
	case errors.Is(err, workflow.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrEmptyRoster), errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type errResp struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeErr(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, errResp{Error: err.Error()})
}
