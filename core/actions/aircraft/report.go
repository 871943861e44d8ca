// Package aircraft reports the air traffic around the user's position.
package aircraft

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/koscakluka/aeris/core/actions/browser"
	"github.com/koscakluka/aeris/core/intents"
	"github.com/koscakluka/aeris/core/match"
)

const (
	messageNoAircraft  = "Sir, no aircraft detected in your operational airspace."
	messageSummary     = "Sir, I currently detect %d aircraft nearby."
	messageOpeningMap  = "Opening aircraft radar, sir."
	messageScanFailed  = "Sir, I could not complete the radar scan."
	unknownOrigin      = "unknown origin"
	unknownDestination = "unknown destination"
)

var (
	detailedCommands = []string{
		"give me aircraft details",
		"detailed aircraft report",
		"full detailed aircraft report",
	}
	openCommands = []string{
		"open aircraft",
		"open flight radar",
		"show aircraft map",
	}
	summaryCommands = []string{
		"planes nearby",
		"how many aircraft",
		"how many planes",
	}
	keywords = []string{"aircraft", "airplane", "plane", "flight", "air traffic"}
)

// Radar answers aircraft questions from a traffic Source.
type Radar struct {
	source   Source
	opener   browser.Opener
	position Position
	matcher  match.Matcher
}

func NewRadar(source Source, opener browser.Opener, position Position) *Radar {
	return &Radar{
		source:   source,
		opener:   opener,
		position: position,
		matcher:  match.Default,
	}
}

// HandleUtterance is the fast path taken before classification. It
// reports false when the utterance is not about aircraft.
func (r *Radar) HandleUtterance(ctx context.Context, utterance string) (string, bool) {
	ctx, span := tracer.Start(ctx, "aircraft fast path")
	defer span.End()

	switch {
	case r.matcher.MatchesAny(utterance, detailedCommands...):
		return r.Report(ctx), true
	case r.matcher.MatchesAny(utterance, openCommands...):
		return r.OpenMap(ctx), true
	case r.matcher.MatchesAny(utterance, summaryCommands...), containsKeyword(utterance):
		return r.Summary(ctx), true
	}
	return "", false
}

func containsKeyword(utterance string) bool {
	utterance = strings.ToLower(utterance)
	return slices.ContainsFunc(keywords, func(keyword string) bool {
		return strings.Contains(utterance, keyword)
	})
}

func (r *Radar) Summary(ctx context.Context) string {
	planes, err := r.source.Nearby(ctx)
	if err != nil {
		logger.Error("radar scan failed", "error", err)
		return messageScanFailed
	}
	return fmt.Sprintf(messageSummary, len(planes))
}

func (r *Radar) OpenMap(ctx context.Context) string {
	if err := r.opener.OpenURL(ctx, RadarURL(r.position)); err != nil {
		logger.Warn("failed to open radar map", "error", err)
	}
	return messageOpeningMap
}

// Report describes the nearest aircraft in detail.
func (r *Radar) Report(ctx context.Context) string {
	planes, err := r.source.Nearby(ctx)
	if err != nil {
		logger.Error("radar scan failed", "error", err)
		return messageScanFailed
	}
	if len(planes) == 0 {
		return messageNoAircraft
	}

	closest := slices.MinFunc(planes, func(a, b Aircraft) int {
		switch {
		case a.DistanceKM < b.DistanceKM:
			return -1
		case a.DistanceKM > b.DistanceKM:
			return 1
		}
		return 0
	})

	route, err := r.source.Route(ctx, closest.ICAO24)
	if err != nil {
		logger.Warn("failed to fetch flight route", "icao24", closest.ICAO24, "error", err)
	}

	return fmt.Sprintf(
		"Sir, radar scan complete. "+
			"I have detected %d aircraft in your vicinity. "+
			"The nearest one is %s, registered in %s. "+
			"It is approximately %.1f kilometers away, "+
			"traveling at %.0f kilometers per hour, "+
			"heading %.0f degrees, "+
			"currently %s. "+
			"Estimated route is from %s to %s. "+
			"No immediate threat detected.",
		len(planes),
		closest.Callsign, closest.Country,
		closest.DistanceKM,
		closest.VelocityMS*3.6,
		closest.HeadingDeg,
		situation(closest.DistanceKM),
		fallback(route.Departure, unknownOrigin), fallback(route.Arrival, unknownDestination),
	)
}

func situation(distanceKM float64) string {
	switch {
	case distanceKM < 50:
		return "approaching your position"
	case distanceKM < 120:
		return "passing through nearby airspace"
	default:
		return "operating at a safe distance"
	}
}

func fallback(value, otherwise string) string {
	if value == "" {
		return otherwise
	}
	return value
}

// Handle serves the aircraft_report intent; {"open": true} opens the map
// instead of reporting.
func (r *Radar) Handle(ctx context.Context, req intents.Request) (string, error) {
	if open, _ := req.Parameters["open"].(bool); open {
		return r.OpenMap(ctx), nil
	}
	return r.Report(ctx), nil
}
