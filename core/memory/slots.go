package memory

import (
	"fmt"
	"maps"
	"strings"
)

// SlotFilling tracks an intent whose parameters are collected over several
// turns.
type SlotFilling struct {
	PendingIntent   string
	CurrentQuestion string
	Parameters      map[string]any
}

// Begin marks intent as pending. Collected parameters are kept when the
// same intent is already pending and dropped otherwise.
func (s *SlotFilling) Begin(intent string) {
	if s.PendingIntent != intent {
		s.Parameters = nil
		s.CurrentQuestion = ""
	}
	s.PendingIntent = intent
}

// Merge copies the non-empty values of params into the collected
// parameters. Empty strings and nil values never overwrite a known value.
func (s *SlotFilling) Merge(params map[string]any) {
	for key, value := range params {
		if isEmptyValue(value) {
			continue
		}
		if s.Parameters == nil {
			s.Parameters = map[string]any{}
		}
		if text, ok := value.(string); ok {
			value = strings.TrimSpace(text)
		}
		s.Parameters[key] = value
	}
}

// String returns the collected parameter as text, or "" when unknown.
func (s SlotFilling) String(key string) string {
	value, ok := s.Parameters[key]
	if !ok || isEmptyValue(value) {
		return ""
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text)
	}
	return fmt.Sprint(value)
}

// FirstMissing returns the first of required that has not been collected.
func (s SlotFilling) FirstMissing(required []string) (string, bool) {
	for _, key := range required {
		if s.String(key) == "" {
			return key, true
		}
	}
	return "", false
}

func (s SlotFilling) IsPending() bool { return s.PendingIntent != "" }

func (s *SlotFilling) Clear() {
	s.PendingIntent = ""
	s.CurrentQuestion = ""
	s.Parameters = nil
}

func (s SlotFilling) clone() SlotFilling {
	s.Parameters = maps.Clone(s.Parameters)
	return s
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}
