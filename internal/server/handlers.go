package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/TommyGymer/mdns-client/internal/logging"
	"github.com/TommyGymer/mdns-client/internal/metrics"
	"github.com/TommyGymer/mdns-client/internal/records"
)

// RecordRow is one host in the records payload. Absent families are
// omitted rather than padded with placeholders.
type RecordRow struct {
	Host string `json:"host"`
	IPv4 string `json:"ipv4,omitempty"`
	IPv6 string `json:"ipv6,omitempty"`
}

// RecordsPayload is the JSON document served on /records and pushed to
// websocket subscribers.
type RecordsPayload struct {
	Query   string      `json:"query"`
	Hosts   int         `json:"hosts"`
	Records []RecordRow `json:"records"`
}

// buildPayload renders one store snapshot as the wire payload. Rows keep
// the snapshot's host order, so identical tables marshal to identical
// bytes.
func buildPayload(query string, snap records.Set) RecordsPayload {
	hosts := snap.Hosts()
	rows := make([]RecordRow, 0, len(hosts))
	for _, host := range hosts {
		ipv4, ipv6 := snap.Lookup(host)
		row := RecordRow{Host: host}
		if ipv4.IsValid() {
			row.IPv4 = ipv4.String()
		}
		if ipv6.IsValid() {
			row.IPv6 = ipv6.String()
		}
		rows = append(rows, row)
	}
	return RecordsPayload{Query: query, Hosts: len(rows), Records: rows}
}

// payload marshals the current table.
func (s *Server) payload() ([]byte, error) {
	return json.Marshal(buildPayload(s.config.Query, s.config.Store.Snapshot()))
}

// handleRecords serves the current record table as JSON.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	payload, err := s.payload()
	if err != nil {
		logging.Error("failed to marshal records", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// counted wraps a handler with the per-path request counter.
func counted(path string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequests.WithLabelValues(path).Inc()
		h(w, r)
	}
}
