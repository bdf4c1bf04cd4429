// Package httpapi exposes the learner engine and the teacher materials over
// HTTP and a WebSocket channel.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/p-n-ai/word-forge/internal/activity"
	"github.com/p-n-ai/word-forge/internal/curriculum"
	"github.com/p-n-ai/word-forge/internal/learner"
	"github.com/p-n-ai/word-forge/internal/teacher"
)

// readyTimeout bounds each readiness check.
const readyTimeout = 2 * time.Second

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// ReadyCheck reports whether a backing service is reachable.
type ReadyCheck func(ctx context.Context) error

// Config holds the dependencies of the API server.
type Config struct {
	Engine *learner.Engine
	// Materials and Gate enable the /teacher/ routes when both are set.
	Materials *teacher.Materials
	Gate      *teacher.Gate
	Ready     []ReadyCheck
}

// Server serves the HTTP API.
type Server struct {
	engine    *learner.Engine
	materials *teacher.Materials
	gate      *teacher.Gate
	ready     []ReadyCheck
}

// New creates an API server.
func New(cfg Config) *Server {
	return &Server{
		engine:    cfg.Engine,
		materials: cfg.Materials,
		gate:      cfg.Gate,
		ready:     cfg.Ready,
	}
}

// Handler returns the HTTP router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.HandleFunc("GET /api/weeks", s.handleListWeeks)
	mux.HandleFunc("GET /api/weeks/{week}", s.handleGetWeek)

	mux.HandleFunc("POST /api/sessions", s.handleStartSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("GET /api/sessions/{id}/week", s.handleSessionWeek)
	mux.HandleFunc("PUT /api/sessions/{id}/week", s.handleSwitchWeek)
	mux.HandleFunc("PUT /api/sessions/{id}/l1", s.handleSetL1)
	mux.HandleFunc("POST /api/sessions/{id}/actions", s.handleAction)
	mux.HandleFunc("POST /api/sessions/{id}/recall", s.handleOpenRecall)
	mux.HandleFunc("GET /api/sessions/{id}/review", s.handleReview)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleCloseSession)

	mux.HandleFunc("GET /ws/session/{id}", s.handleSessionSocket)

	if s.materials != nil && s.gate != nil {
		tm := http.NewServeMux()
		tm.HandleFunc("GET /teacher/{$}", s.handleTeacherIndex)
		tm.HandleFunc("GET /teacher/levels/{level}", s.handleLevelTest)
		tm.HandleFunc("GET /teacher/formal/{n}", s.handleFormalTest)
		mux.Handle("/teacher/", s.gate.Middleware(tm))
	}
	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	for _, check := range s.ready {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		err := check(ctx)
		cancel()
		if err != nil {
			slog.Warn("readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps package sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, learner.ErrSessionNotFound),
		errors.Is(err, curriculum.ErrWeekNotFound),
		errors.Is(err, teacher.ErrTestNotFound):
		return http.StatusNotFound
	case errors.Is(err, activity.ErrInvalidTransition),
		errors.Is(err, learner.ErrNoRecall):
		return http.StatusConflict
	case errors.Is(err, teacher.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, activity.ErrUnknownPart),
		errors.Is(err, activity.ErrDuplicatePart),
		errors.Is(err, activity.ErrUnknownWord),
		errors.Is(err, activity.ErrUnknownCategory),
		errors.Is(err, activity.ErrUnavailable),
		errors.Is(err, activity.ErrUnknownOp),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

var errBadRequest = errors.New("bad request")

// decodeJSON reads a JSON body into v. An empty body leaves v untouched
// when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: decoding body: %v", errBadRequest, err)
	}
	return nil
}
