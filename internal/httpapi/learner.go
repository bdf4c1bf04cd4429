package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/p-n-ai/word-forge/internal/activity"
	"github.com/p-n-ai/word-forge/internal/curriculum"
	"github.com/p-n-ai/word-forge/internal/learner"
	"github.com/p-n-ai/word-forge/internal/review"
)

// WeekSummary is one entry of the week list.
type WeekSummary struct {
	Week  int    `json:"week"`
	Title string `json:"title"`
	Terms int    `json:"terms"`
}

type startRequest struct {
	ID string `json:"id"`
}

type weekRequest struct {
	Week int `json:"week"`
}

type l1Request struct {
	Enabled bool `json:"enabled"`
}

// ActionResponse is the reply to an applied action.
type ActionResponse struct {
	Outcome activity.Outcome `json:"outcome"`
	Session learner.View     `json:"session"`
}

// ReviewResponse lists a learner's review records.
type ReviewResponse struct {
	Items []review.Record `json:"items"`
	Stats review.Stats    `json:"stats"`
}

func (s *Server) handleListWeeks(w http.ResponseWriter, r *http.Request) {
	weeks := s.engine.Curriculum().Weeks()
	out := make([]WeekSummary, 0, len(weeks))
	for _, wk := range weeks {
		out = append(out, WeekSummary{Week: wk.Week, Title: wk.Title, Terms: len(wk.Vocabulary)})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetWeek returns a week's data. L1 translations are included only
// when ?session= names a learner with L1 support on.
func (s *Server) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("week"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: week must be a number", errBadRequest))
		return
	}
	wk, ok := s.engine.Curriculum().Week(n)
	if !ok {
		writeError(w, fmt.Errorf("week %d: %w", n, curriculum.ErrWeekNotFound))
		return
	}

	showL1 := false
	if id := r.URL.Query().Get("session"); id != "" {
		v, err := s.engine.Get(id)
		if err != nil {
			writeError(w, err)
			return
		}
		showL1 = v.ShowL1Support
	}
	if !showL1 {
		wk = wk.WithoutL1()
	}
	writeJSON(w, http.StatusOK, wk)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(w, err)
		return
	}
	v, err := s.engine.Start(r.Context(), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	v, err := s.engine.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleSessionWeek(w http.ResponseWriter, r *http.Request) {
	wk, err := s.engine.Week(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

func (s *Server) handleSwitchWeek(w http.ResponseWriter, r *http.Request) {
	var req weekRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, err)
		return
	}
	v, err := s.engine.SwitchWeek(r.Context(), r.PathValue("id"), req.Week)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleSetL1(w http.ResponseWriter, r *http.Request) {
	var req l1Request
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, err)
		return
	}
	v, err := s.engine.SetL1Support(r.Context(), r.PathValue("id"), req.Enabled)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var a activity.Action
	if err := decodeJSON(w, r, &a, false); err != nil {
		writeError(w, err)
		return
	}
	out, v, err := s.engine.Apply(r.Context(), r.PathValue("id"), a)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ActionResponse{Outcome: out, Session: v})
}

func (s *Server) handleOpenRecall(w http.ResponseWriter, r *http.Request) {
	v, err := s.engine.OpenRecall(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	items, stats, err := s.engine.Review(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []review.Record{}
	}
	writeJSON(w, http.StatusOK, ReviewResponse{Items: items, Stats: stats})
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.engine.Get(id); err != nil {
		writeError(w, err)
		return
	}
	s.engine.Close(id)
	w.WriteHeader(http.StatusNoContent)
}
