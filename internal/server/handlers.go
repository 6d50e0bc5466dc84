package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"taskbench/internal/result"
	"taskbench/internal/task"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "UP",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

// handleTasks serves the collection: GET lists, POST creates.
func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.store.List())
	case http.MethodPost:
		p, ok := s.readPayload(w, r)
		if !ok {
			return
		}
		t, err := s.store.Create(p)
		if err != nil {
			s.fail(w, err)
			return
		}
		s.publish("task.created", t)
		writeJSON(w, http.StatusCreated, t)
	default:
		methodNotAllowed(w, r)
	}
}

// handleTaskSub routes everything under /tasks/: the slow and export demo
// endpoints, and the per-id operations.
func (s *Server) handleTaskSub(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/tasks/")
	switch rest {
	case "slow":
		s.handleSlow(w, r)
		return
	case "export":
		s.handleExport(w, r)
		return
	}
	if strings.Contains(rest, "/") {
		s.handleUnmatched(w, r)
		return
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		writeErr(w, http.StatusBadRequest, codeInvalidInput, "task id must be an integer")
		return
	}
	switch r.Method {
	case http.MethodGet:
		t, err := s.store.Get(id)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	case http.MethodPut:
		p, ok := s.readPayload(w, r)
		if !ok {
			return
		}
		t, err := s.store.Update(id, p)
		if err != nil {
			s.fail(w, err)
			return
		}
		s.publish("task.updated", t)
		writeJSON(w, http.StatusOK, t)
	case http.MethodDelete:
		t, err := s.store.Delete(id)
		if err != nil {
			s.fail(w, err)
			return
		}
		s.publish("task.deleted", t)
		writeJSON(w, http.StatusOK, map[string]any{"message": "task deleted", "task": t})
	default:
		methodNotAllowed(w, r)
	}
}

// handleSlow draws a random delay, suspends, and occasionally simulates an
// overloaded backend. Successful calls return up to the first two tasks.
// The draw and the coin-flip are independent per call; no state is shared.
func (s *Server) handleSlow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r)
		return
	}
	delay := s.randDelay()
	if err := s.sleep(r.Context(), delay); err != nil {
		// Caller gave up during the delay; nothing left to write.
		return
	}
	if delay > s.cfg.Slow.FailThreshold() && s.randFloat() < s.cfg.Slow.FailProbability {
		writeErr(w, http.StatusServiceUnavailable, codeServiceUnavailable, "service temporarily overloaded, try again")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Head(2))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	ct := result.ContentType(format)
	if ct == "" {
		writeErr(w, http.StatusBadRequest, codeInvalidInput, "unknown export format "+format)
		return
	}
	b, err := s.exporter.Export(format)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", ct)
	_, _ = w.Write(b)
}

// handleResetAll is admin-gated: the X-API-KEY header must carry the shared
// secret exactly. On success the store returns to the seed state.
func (s *Server) handleResetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}
	if r.Header.Get("X-API-KEY") != s.cfg.Admin.APIKey {
		writeErr(w, http.StatusUnauthorized, codeUnauthorized, "missing or invalid API key")
		return
	}
	s.store.Reset()
	s.publish("task.reset", map[string]int{"tasks": len(s.store.List())})
	writeJSON(w, http.StatusOK, map[string]string{"message": "all tasks reset to seed state"})
}

// handleUnmatched is the catch-all for routes outside the table.
func (s *Server) handleUnmatched(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusNotFound, codeNotFound, "no route for "+r.URL.Path)
}

// readPayload reads and parses a JSON body, reporting violations itself.
// The bool result tells the caller whether to proceed.
func (s *Server) readPayload(w http.ResponseWriter, r *http.Request) (task.Payload, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, codeInvalidInput, "could not read request body")
		return task.Payload{}, false
	}
	p, err := task.ParsePayload(body)
	if err != nil {
		s.fail(w, err)
		return task.Payload{}, false
	}
	return p, true
}

// publish sends a mutation event. Failures are logged, never surfaced to the
// HTTP caller.
func (s *Server) publish(topic string, v any) {
	b, err := json.Marshal(v)
	if err == nil {
		err = s.pub.Publish(topic, b)
	}
	if err != nil {
		s.log.Printf("publish %s: %v", topic, err)
	}
}
