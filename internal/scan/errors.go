package scan

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned when a query is empty or whitespace.
var ErrEmptyQuery = errors.New("query is empty")

// ErrorKind categorizes scan startup failures. Failures after startup
// (a malformed response, an entry with no addresses) are never surfaced
// as errors; the scan skips them and keeps listening.
type ErrorKind int

const (
	// ErrKindQuery marks an unusable query string.
	ErrKindQuery ErrorKind = iota
	// ErrKindResolver marks failure to create the mDNS resolver,
	// typically because no multicast-capable interface is available.
	ErrKindResolver
	// ErrKindBrowse marks failure to send the initial browse query.
	ErrKindBrowse
)

// String returns a short label for the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindQuery:
		return "query"
	case ErrKindResolver:
		return "resolver"
	case ErrKindBrowse:
		return "browse"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ScanError is a categorized scan startup failure. It wraps the
// underlying cause so callers can both classify the failure and inspect
// the original error.
type ScanError struct {
	Kind ErrorKind
	Err  error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("scan %s error", e.Kind)
	}
	return fmt.Sprintf("scan %s error: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Err
}

// TroubleshootingHint returns user-facing advice for a scan failure, or
// an empty string when the error carries no ScanError.
func TroubleshootingHint(err error) string {
	var serr *ScanError
	if !errors.As(err, &serr) {
		return ""
	}

	switch serr.Kind {
	case ErrKindQuery:
		return "Queries name a DNS-SD service type, like \"_http._tcp.local\" or \"_ipp._tcp\". " +
			"Try \"_services._dns-sd._udp.local\" to list every advertised type."
	case ErrKindResolver:
		return "The mDNS resolver could not start. Check that a network interface is up, " +
			"that it supports multicast, and that no firewall blocks UDP port 5353."
	case ErrKindBrowse:
		return "The browse query could not be sent. Check network connectivity and that " +
			"multicast traffic to 224.0.0.251 / ff02::fb is allowed."
	default:
		return ""
	}
}
