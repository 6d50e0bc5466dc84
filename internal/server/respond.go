package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskbench/internal/store"
	"taskbench/internal/task"
)

// Machine-readable error codes carried in the "error" field.
const (
	codeInvalidInput       = "invalid_input"
	codeNotFound           = "not_found"
	codeUnauthorized       = "unauthorized"
	codeServiceUnavailable = "service_unavailable"
	codeInternal           = "internal"
	codeMethodNotAllowed   = "method_not_allowed"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": code, "message": msg})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, r.Method+" is not supported on "+r.URL.Path)
}

// fail maps store and validation errors onto the HTTP taxonomy. Anything
// unrecognized is reported as internal without leaking detail.
func (s *Server) fail(w http.ResponseWriter, err error) {
	var verr *task.ValidationError
	switch {
	case errors.As(err, &verr):
		writeErr(w, http.StatusBadRequest, codeInvalidInput, verr.Error())
	case errors.Is(err, store.ErrNoFields):
		writeErr(w, http.StatusBadRequest, codeInvalidInput, store.ErrNoFields.Error())
	case errors.Is(err, store.ErrNotFound):
		writeErr(w, http.StatusNotFound, codeNotFound, store.ErrNotFound.Error())
	default:
		s.log.Printf("unhandled error: %v", err)
		writeErr(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}
