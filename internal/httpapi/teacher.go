package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/p-n-ai/word-forge/internal/quiz"
	"github.com/p-n-ai/word-forge/internal/teacher"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleTeacherIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.materials.Renderer().RenderIndex(w, s.materials.Index(teacher.LinkRoutes)); err != nil {
		writeError(w, err)
	}
}

func (s *Server) handleLevelTest(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(r.PathValue("level"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: level must be a number", errBadRequest))
		return
	}
	t, err := s.materials.LevelTest(level)
	if err != nil {
		writeError(w, err)
		return
	}
	s.writeTest(w, r, t, fmt.Sprintf("level-%02d", level))
}

func (s *Server) handleFormalTest(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: test number must be a number", errBadRequest))
		return
	}
	t, err := s.materials.FormalTest(n)
	if err != nil {
		writeError(w, err)
		return
	}
	s.writeTest(w, r, t, fmt.Sprintf("formal-%d", n))
}

// writeTest sends the printable test, or its answer key workbook when
// ?format=xlsx is given.
func (s *Server) writeTest(w http.ResponseWriter, r *http.Request, t quiz.Test, name string) {
	switch format := r.URL.Query().Get("format"); format {
	case "", "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.materials.Renderer().RenderTest(w, t); err != nil {
			writeError(w, err)
		}
	case "xlsx":
		f, err := teacher.AnswerKey(t)
		if err != nil {
			writeError(w, err)
			return
		}
		defer f.Close()

		buf, err := f.WriteToBuffer()
		if err != nil {
			writeError(w, fmt.Errorf("writing workbook: %w", err))
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"-answer-key.xlsx"))
		w.WriteHeader(http.StatusOK)
		buf.WriteTo(w)
	default:
		writeError(w, fmt.Errorf("%w: unknown format %q", errBadRequest, format))
	}
}
