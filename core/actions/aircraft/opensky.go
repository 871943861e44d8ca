package aircraft

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultOpenSkyURL = "https://opensky-network.org/api"
	defaultRadiusKM   = 200
	routeLookback     = 6 * time.Hour
	requestTimeout    = 10 * time.Second
)

type Aircraft struct {
	ICAO24     string
	Callsign   string
	Country    string
	DistanceKM float64
	// VelocityMS is the ground speed in meters per second.
	VelocityMS float64
	HeadingDeg float64
}

type Route struct {
	Departure string
	Arrival   string
}

// Source reports the traffic around a fixed position.
type Source interface {
	Nearby(ctx context.Context) ([]Aircraft, error)
	Route(ctx context.Context, icao24 string) (Route, error)
}

// OpenSky reads live traffic from the OpenSky Network REST API.
type OpenSky struct {
	baseURL  string
	position Position
	radiusKM float64
	client   *http.Client
	now      func() time.Time
}

type OpenSkyOption func(*OpenSky)

func WithBaseURL(baseURL string) OpenSkyOption {
	return func(o *OpenSky) {
		o.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func WithRadiusKM(radius float64) OpenSkyOption {
	return func(o *OpenSky) {
		o.radiusKM = radius
	}
}

func NewOpenSky(position Position, opts ...OpenSkyOption) *OpenSky {
	o := &OpenSky{
		baseURL:  defaultOpenSkyURL,
		position: position,
		radiusKM: defaultRadiusKM,
		client: &http.Client{
			Timeout: requestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
					return operationName + " " + request.URL.Path
				}),
			),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type statesResponse struct {
	States [][]any `json:"states"`
}

// Nearby lists the aircraft within the configured radius, searching a box
// of one degree around the position.
func (o *OpenSky) Nearby(ctx context.Context) ([]Aircraft, error) {
	ctx, span := tracer.Start(ctx, "fetch nearby aircraft")
	defer span.End()

	query := url.Values{
		"lamin": {formatCoord(o.position.Lat - 1)},
		"lamax": {formatCoord(o.position.Lat + 1)},
		"lomin": {formatCoord(o.position.Lon - 1)},
		"lomax": {formatCoord(o.position.Lon + 1)},
	}

	var body statesResponse
	if err := o.get(ctx, "/states/all", query, &body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch states")
		return nil, err
	}

	aircraft := make([]Aircraft, 0, len(body.States))
	for _, state := range body.States {
		plane, ok := o.parseState(state)
		if !ok || plane.DistanceKM > o.radiusKM {
			continue
		}
		aircraft = append(aircraft, plane)
	}

	span.SetAttributes(attribute.Int("aircraft.count", len(aircraft)))
	return aircraft, nil
}

// parseState reads one state vector: icao24, callsign, origin country,
// ..., longitude (5), latitude (6), ..., velocity (9), true track (10).
func (o *OpenSky) parseState(state []any) (Aircraft, bool) {
	if len(state) < 11 {
		return Aircraft{}, false
	}

	lon, lonOK := state[5].(float64)
	lat, latOK := state[6].(float64)
	if !lonOK || !latOK {
		return Aircraft{}, false
	}

	velocity, _ := state[9].(float64)
	heading, _ := state[10].(float64)
	return Aircraft{
		ICAO24:     stringOr(state[0], ""),
		Callsign:   stringOr(state[1], "Unknown"),
		Country:    stringOr(state[2], "Unknown"),
		DistanceKM: DistanceKM(o.position, Position{Lat: lat, Lon: lon}),
		VelocityMS: velocity,
		HeadingDeg: heading,
	}, true
}

type flight struct {
	EstDepartureAirport *string `json:"estDepartureAirport"`
	EstArrivalAirport   *string `json:"estArrivalAirport"`
}

// Route returns the estimated airports of the aircraft's latest flight
// within the last six hours. Unknown airports are left empty.
func (o *OpenSky) Route(ctx context.Context, icao24 string) (Route, error) {
	ctx, span := tracer.Start(ctx, "fetch flight route")
	defer span.End()
	span.SetAttributes(attribute.String("aircraft.icao24", icao24))

	end := o.now()
	query := url.Values{
		"icao24": {icao24},
		"begin":  {strconv.FormatInt(end.Add(-routeLookback).Unix(), 10)},
		"end":    {strconv.FormatInt(end.Unix(), 10)},
	}

	var flights []flight
	if err := o.get(ctx, "/flights/aircraft", query, &flights); err != nil {
		span.RecordError(err)
		return Route{}, err
	}
	if len(flights) == 0 {
		return Route{}, nil
	}

	latest := flights[len(flights)-1]
	return Route{
		Departure: derefOr(latest.EstDepartureAirport),
		Arrival:   derefOr(latest.EstArrivalAirport),
	}, nil
}

func (o *OpenSky) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("error creating HTTP request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("non-OK HTTP status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stringOr(value any, fallback string) string {
	s, ok := value.(string)
	if !ok {
		return fallback
	}
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
