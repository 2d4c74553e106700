// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Spot fetch results.
const (
	ResultOK             = "ok"
	ResultTransportError = "transport_error"
	ResultDecodeError    = "decode_error"
	ResultError          = "error"
)

var (
	SpotFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "potarig_spot_fetches_total",
			Help: "POTA spot feed fetches by result",
		},
		[]string{"result"},
	)

	SpotsLatest = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "potarig_spots_latest",
			Help: "Number of distinct activations in the most recent fetch",
		},
	)

	RigCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "potarig_rig_commands_total",
			Help: "Transceiver commands by command name and result",
		},
		[]string{"command", "result"}, // result: ok | transport | fault | protocol
	)

	RigCorrections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "potarig_rig_frequency_corrections_total",
			Help: "Frequency re-sets issued after a mode change moved the VFO",
		},
	)

	ContactsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "potarig_contacts_logged_total",
			Help: "Contacts appended to the log, by band",
		},
		[]string{"band"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "potarig_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "potarig_http_requests_total",
			Help: "HTTP requests served, by route and status code",
		},
		[]string{"method", "route", "status"},
	)
)
