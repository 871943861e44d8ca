// Package metrics turns assistant events into Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/koscakluka/aeris/core/events"
)

const namespace = "aeris"

var states = []string{"idle", "listening", "processing", "speaking"}

// Observer counts turns, answers and alarms. Observe has the signature of
// an event listener so it can be attached to the turn controller.
type Observer struct {
	turnsStarted   *prometheus.CounterVec
	turnsCompleted *prometheus.CounterVec
	turnsFailed    *prometheus.CounterVec
	turnsCancelled prometheus.Counter
	turnDuration   *prometheus.HistogramVec
	responses      *prometheus.CounterVec
	alarmsRung     prometheus.Counter
	state          *prometheus.GaugeVec
	audioLevel     prometheus.Gauge
}

func NewObserver(registerer prometheus.Registerer) *Observer {
	o := &Observer{
		turnsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_started_total",
			Help:      "Turns started, by trigger.",
		}, []string{"trigger"}),
		turnsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_completed_total",
			Help:      "Turns that produced an answer, by route.",
		}, []string{"route"}),
		turnsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_failed_total",
			Help:      "Turns that ended on an error, by stage.",
		}, []string{"stage"}),
		turnsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_cancelled_total",
			Help:      "Turns ended by an interrupt command.",
		}),
		turnDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Time from the start of a turn to its answer, by route.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}, []string{"route"}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_total",
			Help:      "Assistant answers, by whether they were spoken.",
		}, []string{"spoken"}),
		alarmsRung: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alarms_rung_total",
			Help:      "Alarms that went off.",
		}),
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "turn_state",
			Help:      "1 for the current turn state, 0 otherwise.",
		}, []string{"state"}),
		audioLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "input_audio_level",
			Help:      "Loudness of the latest captured frame, 0 to 1.",
		}),
	}

	registerer.MustRegister(
		o.turnsStarted, o.turnsCompleted, o.turnsFailed, o.turnsCancelled,
		o.turnDuration, o.responses, o.alarmsRung, o.state, o.audioLevel,
	)
	o.setState("idle")
	return o
}

func (o *Observer) Observe(event events.Event) {
	switch e := event.(type) {
	case events.TurnStarted:
		o.turnsStarted.WithLabelValues(e.Trigger).Inc()
	case events.TurnCompleted:
		o.turnsCompleted.WithLabelValues(e.Route).Inc()
		o.turnDuration.WithLabelValues(e.Route).Observe(e.Duration.Seconds())
	case events.TurnFailed:
		o.turnsFailed.WithLabelValues(e.Stage).Inc()
	case events.TurnCancelled:
		o.turnsCancelled.Inc()
	case events.TurnStateChanged:
		o.setState(e.State)
	case events.AssistantResponseFinal:
		if e.Spoken {
			o.responses.WithLabelValues("true").Inc()
		} else {
			o.responses.WithLabelValues("false").Inc()
		}
	case events.AlarmRinging:
		o.alarmsRung.Inc()
	case events.UserAudioLevel:
		o.audioLevel.Set(e.Level)
	}
}

func (o *Observer) setState(current string) {
	for _, state := range states {
		if state == current {
			o.state.WithLabelValues(state).Set(1)
		} else {
			o.state.WithLabelValues(state).Set(0)
		}
	}
}
