// Package metrics exposes Prometheus instrumentation for the bot. All
// collectors are registered at init via promauto and scraped from the ops
// server's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
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
)

// Accounting metrics
var (
	CommandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsProcessed,
			Help: HelpTextCommandsProcessed,
		},
		[]string{LabelCommand},
	)

	XPGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPGranted,
			Help: HelpTextXPGranted,
		},
		[]string{LabelStat},
	)

	ActivitiesLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActivitiesLogged,
			Help: HelpTextActivitiesLogged,
		},
		[]string{LabelActivity},
	)

	StoreErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStoreErrors,
			Help: HelpTextStoreErrors,
		},
	)
)

// Voice-session metrics
var (
	VoiceSessionsOpened = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameVoiceSessionsOpened,
			Help: HelpTextVoiceSessionsOpened,
		},
	)

	VoiceSessionsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameVoiceSessionsClosed,
			Help: HelpTextVoiceSessionsClosed,
		},
	)

	VoiceSessionsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameVoiceSessionsDropped,
			Help: HelpTextVoiceSessionsDropped,
		},
	)
)

// Side-effect metrics
var (
	NicknameRewrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNicknameRewrites,
			Help: HelpTextNicknameRewrites,
		},
		[]string{LabelOutcome},
	)
)
