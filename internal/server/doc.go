// Package server exposes the live record store over HTTP for headless
// deployments.
//
// The server shares the store with a running scan and serves four
// endpoints:
//
//	/records   current table as JSON
//	/ws        websocket live feed of the same table
//	/metrics   Prometheus metrics
//	/healthz   liveness probe
//
// # Live feed
//
// A websocket subscriber receives the full table on connect and again
// whenever it changes. Change detection compares marshalled payloads,
// which works because rows keep a deterministic order. The feed is
// one-way; subscriber messages beyond control frames are discarded.
//
// # Shutdown
//
// Run blocks until its context is cancelled or an interrupt/SIGTERM
// arrives, then shuts down gracefully: in-flight requests get a bounded
// grace period and websocket subscribers receive a going-away close
// frame, since http.Server.Shutdown does not wait for hijacked
// connections.
package server
