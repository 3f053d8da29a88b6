package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Adjudication Metrics
var (
	LLMInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLLMInvocations,
			Help: HelpTextLLMInvocations,
		},
		[]string{LabelComponent, LabelOutcome},
	)

	LLMInvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameLLMInvocationTime,
			Help:    HelpTextLLMInvocationTime,
			Buckets: LLMLatencyBuckets,
		},
		[]string{LabelComponent},
	)

	VerdictsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameVerdictsRecorded,
			Help: HelpTextVerdictsRecorded,
		},
		[]string{LabelWinner},
	)

	EliminationRoundsScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEliminationRounds,
			Help: HelpTextEliminationRounds,
		},
	)

	EliminationScoreRepairs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameScoreRepairs,
			Help: HelpTextScoreRepairs,
		},
	)

	ModerationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameModerationDecisions,
			Help: HelpTextModerationDecisions,
		},
		[]string{LabelAction},
	)

	ModerationFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameModerationFallbacks,
			Help: HelpTextModerationFallbacks,
		},
	)

	RoundsAdvanced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsAdvanced,
			Help: HelpTextRoundsAdvanced,
		},
		[]string{LabelFormat},
	)

	RoundsExpired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsExpired,
			Help: HelpTextRoundsExpired,
		},
		[]string{LabelFormat},
	)
)
