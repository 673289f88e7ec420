package scan

import (
	"context"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/TommyGymer/mdns-client/internal/logging"
	"github.com/TommyGymer/mdns-client/internal/metrics"
	"github.com/TommyGymer/mdns-client/internal/records"
)

const (
	// DefaultWindow bounds one discovery session. When it elapses the
	// task opens a fresh session, so the scan keeps listening and
	// address changes suppressed by per-session deduplication become
	// visible again.
	DefaultWindow = 5 * time.Second

	// entryBuffer absorbs a burst of entries resolved from one response
	// without stalling the resolver.
	entryBuffer = 16

	// reopenDelay spaces retries when a session renewal fails to open.
	reopenDelay = time.Second
)

// task runs one scan generation: a chain of discovery sessions for a
// single query, converted into bindings and applied to the shared store.
// A task lives until its context is cancelled.
type task struct {
	query   Query
	store   *records.Store
	browser Browser
	window  time.Duration
}

// openSession starts one browse session bounded by the task window.
func (t *task) openSession(ctx context.Context) (<-chan *zeroconf.ServiceEntry, context.CancelFunc, error) {
	sctx, cancel := context.WithTimeout(ctx, t.window)
	entries := make(chan *zeroconf.ServiceEntry, entryBuffer)
	if err := t.browser.Browse(sctx, t.query.Service, t.query.Domain, entries); err != nil {
		cancel()
		metrics.SessionOpenErrors.Inc()
		return nil, nil, err
	}
	metrics.SessionsOpened.Inc()
	return entries, cancel, nil
}

// run drains sessions until ctx is cancelled, renewing the session each
// time its window elapses. The first session is opened by the caller so
// open failures can be reported synchronously.
func (t *task) run(ctx context.Context, entries <-chan *zeroconf.ServiceEntry, endSession context.CancelFunc) {
	for {
		t.consume(ctx, entries)
		endSession()

		if ctx.Err() != nil {
			logging.Debug("scan task stopped", zap.String("query", t.query.String()))
			return
		}

		var err error
		entries, endSession, err = t.nextSession(ctx)
		if err != nil {
			return
		}
	}
}

// nextSession reopens after a window elapses, retrying until it succeeds
// or the task is cancelled. A failed renewal never kills a running scan.
func (t *task) nextSession(ctx context.Context) (<-chan *zeroconf.ServiceEntry, context.CancelFunc, error) {
	for {
		entries, cancel, err := t.openSession(ctx)
		if err == nil {
			return entries, cancel, nil
		}
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}

		logging.Warn("reopening discovery session failed",
			zap.String("query", t.query.String()),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(reopenDelay):
		}
	}
}

// consume applies entries from one session until the resolver closes the
// channel or the task is cancelled. Cancellation is checked before every
// receive; an entry already being recorded finishes first.
func (t *task) consume(ctx context.Context, entries <-chan *zeroconf.ServiceEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-entries:
			if !ok {
				return
			}
			t.record(entry)
		}
	}
}

// record converts one service entry into bindings and applies them as a
// single batch. Entries with no usable host or address are skipped and
// the scan keeps listening.
func (t *task) record(entry *zeroconf.ServiceEntry) {
	batch := entryBindings(entry)
	if len(batch) == 0 {
		metrics.EntriesSkipped.Inc()
		logging.Debug("skipped entry without host or addresses",
			zap.String("query", t.query.String()),
		)
		return
	}

	t.store.Apply(batch)
	metrics.BindingsApplied.Add(float64(len(batch)))
	metrics.RecordsCurrent.Set(float64(t.store.Len()))
	logging.Debug("recorded service entry",
		zap.String("host", batch[0].Host),
		zap.Int("addresses", len(batch)),
	)
}

// entryBindings extracts the address records carried by a service entry,
// each paired with the advertised host name. Ports, TXT data and
// anything else the entry carries are ignored.
func entryBindings(entry *zeroconf.ServiceEntry) []records.Binding {
	if entry == nil {
		return nil
	}
	host := strings.TrimSuffix(entry.HostName, ".")
	if host == "" {
		return nil
	}

	batch := make([]records.Binding, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		batch = appendBinding(batch, ip, host)
	}
	for _, ip := range entry.AddrIPv6 {
		batch = appendBinding(batch, ip, host)
	}
	return batch
}

func appendBinding(batch []records.Binding, ip net.IP, host string) []records.Binding {
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return batch
	}
	return append(batch, records.NewBinding(addr, host))
}
