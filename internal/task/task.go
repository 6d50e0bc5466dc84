// Package task defines the task record, payload parsing and field validation
// shared by the store and the HTTP handlers.
package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTitleLen is the maximum title length after trimming.
	MaxTitleLen = 100

	// DefaultDescription is stored when a create payload omits description.
	DefaultDescription = "No description"

	// DisallowedField is rejected when present as a top-level key in a
	// create payload. Clients fuzzing the API should see an explicit 400
	// rather than have the key silently ignored.
	DisallowedField = "invalidField"
)

type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// ValidationError reports the first violated constraint of a payload field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// Payload is a parsed request body. Each field is tri-state: nil means the
// key was absent; a non-nil pointer means it was present with a valid JSON
// type. Present-but-wrong-type never produces a Payload, it fails the parse.
type Payload struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Empty reports whether no recognized field was provided.
func (p Payload) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// ParsePayload decodes a request body into a Payload. The body is decoded
// key by key so a wrong-typed field can be reported by name instead of as a
// generic decode error.
func ParsePayload(body []byte) (Payload, error) {
	var p Payload
	if len(body) == 0 {
		return p, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return p, invalid("body", "must be a JSON object")
	}
	if _, ok := raw[DisallowedField]; ok {
		return p, invalid(DisallowedField, "field is not allowed")
	}
	if msg, ok := raw["title"]; ok {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return p, invalid("title", "must be a string")
		}
		p.Title = &s
	}
	if msg, ok := raw["description"]; ok {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return p, invalid("description", "must be a string")
		}
		p.Description = &s
	}
	if msg, ok := raw["completed"]; ok {
		var b bool
		if err := json.Unmarshal(msg, &b); err != nil {
			return p, invalid("completed", "must be a boolean")
		}
		p.Completed = &b
	}
	return p, nil
}

// CleanTitle trims the title and checks the non-empty and length rules.
func CleanTitle(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", invalid("title", "must be a non-empty string")
	}
	if utf8.RuneCountInString(t) > MaxTitleLen {
		return "", invalid("title", fmt.Sprintf("must be at most %d characters", MaxTitleLen))
	}
	return t, nil
}

// CleanDescription trims a provided description. An explicitly provided
// empty description stays empty; the default placeholder applies only when
// the field is absent on create.
func CleanDescription(s string) string {
	return strings.TrimSpace(s)
}
