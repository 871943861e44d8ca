package alarms

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	relativePattern = regexp.MustCompile(`in (\d+)\s*(minutes?|hours?)`)
	absolutePattern = regexp.MustCompile(`(?:at )?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
)

// Keywords mark an utterance as an alarm request.
var Keywords = []string{"set alarm", "wake me up", "alarm at", "alarm in"}

// IsRequest reports whether text contains one of the alarm keywords.
func IsRequest(text string) bool {
	text = strings.ToLower(text)
	for _, keyword := range Keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// ParseTime resolves an alarm time from text relative to now.
//
// Relative requests ("in 10 minutes", "in 2 hours") are added to now.
// Absolute requests ("at 6am", "7:30 pm", "at 18:15") resolve to today,
// or tomorrow if that moment already passed. Only moments after now parse.
func ParseTime(text string, now time.Time) (time.Time, bool) {
	text = strings.ToLower(text)

	if m := relativePattern.FindStringSubmatch(text); m != nil {
		amount, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		unit := time.Minute
		if strings.HasPrefix(m[2], "hour") {
			unit = time.Hour
		}
		if amount <= 0 || int64(amount) > math.MaxInt64/int64(unit) {
			return time.Time{}, false
		}
		target := now.Add(time.Duration(amount) * unit)
		if !target.After(now) {
			return time.Time{}, false
		}
		return target, true
	}

	m := absolutePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	switch m[3] {
	case "pm":
		if hour > 12 {
			return time.Time{}, false
		}
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour > 12 {
			return time.Time{}, false
		}
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}

	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if target.Before(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target, true
}
