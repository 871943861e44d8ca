// Package intents routes classified intents to their action handlers and
// decides the text the assistant answers with.
package intents

import (
	"fmt"
	"strings"
)

const (
	NameChat          = "chat"
	NameOpenApp       = "open_app"
	NameWeatherReport = "weather_report"
	NameSearch        = "search"
	NameSendMessage   = "send_message"
	NameAircraft      = "aircraft_report"
)

// ClassifiedIntent is the result of classifying one utterance.
type ClassifiedIntent struct {
	Name         string         `json:"intent"`
	Parameters   Parameters     `json:"parameters,omitempty"`
	ResponseText string         `json:"text"`
	MemoryUpdate map[string]any `json:"memory_update,omitempty"`
}

// Normalized returns a copy with defaults applied: a blank name becomes
// "chat" and names are lower-cased.
func (i ClassifiedIntent) Normalized() ClassifiedIntent {
	i.Name = strings.ToLower(strings.TrimSpace(i.Name))
	if i.Name == "" {
		i.Name = NameChat
	}
	if i.Parameters == nil {
		i.Parameters = Parameters{}
	}
	return i
}

type Parameters map[string]any

// String returns the trimmed text value of key, or "" when the key is
// absent or holds nil.
func (p Parameters) String(key string) string {
	value, ok := p[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

// StringOr is String with a fallback for missing values.
func (p Parameters) StringOr(key, fallback string) string {
	if value := p.String(key); value != "" {
		return value
	}
	return fallback
}
