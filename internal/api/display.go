package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/seantiz/abacus/internal/model"
	"github.com/seantiz/abacus/internal/store"
)

// handleStreamDisplay streams a session's display as server-sent events. The
// current display is sent first, then every update, then a "done" event once
// the session is closed.
func (s *Server) handleStreamDisplay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sess, err := s.store.GetSession(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		s.logger.Error("get session for display", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get session")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	if sess.Status != model.StatusActive {
		w.WriteHeader(http.StatusOK)
		_ = writeSSEData(w, sess.Display())
		_ = writeSSEEvent(w, "done", "session closed")
		return
	}

	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		s.logger.Error("set write deadline for SSE", "error", err)
	}

	// A close racing the status check above leaves ch already closed.
	ch, unsub := s.sessions.Broker().Subscribe(id)
	defer unsub()

	// Re-read so presses between the first read and Subscribe are not lost.
	if latest, err := s.store.GetSession(r.Context(), id); err == nil {
		sess = latest
	}

	w.WriteHeader(http.StatusOK)
	if err := writeSSEData(w, sess.Display()); err != nil {
		return
	}
	flusher, canFlush := w.(http.Flusher)
	if canFlush {
		flusher.Flush()
	}

	for {
		select {
		case d, ok := <-ch:
			if !ok {
				_ = writeSSEEvent(w, "done", "session closed")
				if canFlush {
					flusher.Flush()
				}
				return
			}
			if err := writeSSEData(w, d); err != nil {
				return
			}
			if canFlush {
				flusher.Flush()
			}
		case <-r.Context().Done():
			return
		}
	}
}

// writeSSEData writes a display as a single-line JSON data event.
func writeSSEData(w http.ResponseWriter, d model.Display) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", b)
	return err
}

// writeSSEEvent writes a named SSE event (event: <type>\ndata: <data>\n\n).
func writeSSEEvent(w http.ResponseWriter, eventType, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\n", eventType); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return nil
}
