// Package metrics defines the Prometheus instrumentation shared across
// the scanner and the record server. Collectors register themselves on
// the default registry; the serve command exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScansStarted counts scan generations launched by the controller.
	ScansStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mdns_client_scans_started_total",
		Help: "Number of scan generations launched",
	})

	// SessionsOpened counts discovery sessions, including renewals
	// within one scan generation.
	SessionsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mdns_client_sessions_opened_total",
		Help: "Number of discovery sessions opened, including renewals",
	})

	// SessionOpenErrors counts sessions that failed to open.
	SessionOpenErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mdns_client_session_open_errors_total",
		Help: "Number of discovery sessions that failed to open",
	})

	// BindingsApplied counts address bindings applied to the store.
	BindingsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mdns_client_bindings_applied_total",
		Help: "Number of address bindings applied to the record store",
	})

	// EntriesSkipped counts service entries dropped for carrying no
	// usable host name or address.
	EntriesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mdns_client_entries_skipped_total",
		Help: "Number of service entries skipped for missing host or address data",
	})

	// RecordsCurrent tracks the number of bindings in the store.
	RecordsCurrent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mdns_client_records_current",
		Help: "Number of bindings currently held by the record store",
	})

	// WebsocketClients tracks connected live-feed subscribers.
	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mdns_client_websocket_clients",
		Help: "Number of connected websocket subscribers",
	})

	// HTTPRequests counts record server requests by path.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mdns_client_http_requests_total",
		Help: "Number of HTTP requests served, labelled by path",
	}, []string{"path"})
)
