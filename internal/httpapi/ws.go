package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/word-forge/internal/activity"
	"github.com/p-n-ai/word-forge/internal/learner"
)

// Message types pushed over the session socket.
const (
	MessageSnapshot = "snapshot"
	MessageResult   = "result"
	MessageError    = "error"
)

// socketWriteTimeout bounds each push to the client.
const socketWriteTimeout = 10 * time.Second

// SocketMessage is a server push on the session socket. Clients send
// activity.Action values.
type SocketMessage struct {
	Type    string            `json:"type"`
	Outcome *activity.Outcome `json:"outcome,omitempty"`
	Error   string            `json:"error,omitempty"`
	Session learner.View      `json:"session"`
}

// handleSessionSocket runs the live activity channel of one session. The
// current snapshot is pushed on connect and after every action.
func (s *Server) handleSessionSocket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	v, err := s.engine.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	// Server-wide deadlines would otherwise cut long-lived connections.
	rc := http.NewResponseController(w)
	rc.SetReadDeadline(time.Time{})
	rc.SetWriteDeadline(time.Time{})

	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "learner_id", id, "error", err)
		return
	}
	defer c.CloseNow()

	ctx := r.Context()
	slog.Debug("session socket opened", "learner_id", id)

	if err := s.push(r, c, SocketMessage{Type: MessageSnapshot, Session: v}); err != nil {
		return
	}

	for {
		var a activity.Action
		if err := wsjson.Read(ctx, c, &a); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway ||
				errors.Is(err, ctx.Err()) {
				slog.Debug("session socket closed", "learner_id", id)
			} else {
				slog.Warn("session socket read failed", "learner_id", id, "error", err)
			}
			return
		}

		out, v, err := s.engine.Apply(ctx, id, a)
		msg := SocketMessage{Type: MessageResult, Outcome: &out, Session: v}
		if err != nil {
			msg = SocketMessage{Type: MessageError, Error: err.Error(), Session: v}
			if errors.Is(err, learner.ErrSessionNotFound) {
				s.push(r, c, msg)
				c.Close(websocket.StatusPolicyViolation, "session closed")
				return
			}
		}
		if err := s.push(r, c, msg); err != nil {
			return
		}
	}
}

func (s *Server) push(r *http.Request, c *websocket.Conn, msg SocketMessage) error {
	ctx, cancel := context.WithTimeout(r.Context(), socketWriteTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, c, msg); err != nil {
		slog.Warn("session socket write failed", "learner_id", msg.Session.LearnerID, "error", err)
		return err
	}
	return nil
}
