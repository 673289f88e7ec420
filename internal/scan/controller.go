package scan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/TommyGymer/mdns-client/internal/logging"
	"github.com/TommyGymer/mdns-client/internal/metrics"
	"github.com/TommyGymer/mdns-client/internal/records"
)

// Controller owns the lifetime of the background scan. At most one scan
// task is alive at any instant; Start replaces the running one and
// Shutdown retires it. Methods are safe for concurrent use.
type Controller struct {
	store   *records.Store
	browser Browser

	// Window bounds each discovery session. Zero means DefaultWindow.
	// Takes effect at the next Start.
	Window time.Duration

	mu      sync.Mutex
	current *handle
}

// handle is the controller's grip on a running task.
type handle struct {
	query  Query
	cancel context.CancelFunc
	done   chan struct{}
}

// NewController returns a controller that records results into store.
func NewController(store *records.Store) *Controller {
	return &Controller{
		store:   store,
		browser: zeroconfBrowser{},
	}
}

// Start begins scanning for rawQuery. The running scan, if any, is
// cancelled and fully retired first and the store is cleared, so results
// from the previous query never survive into the new generation. The
// first discovery session is opened before Start returns: an open
// failure is returned to the caller and leaves no scan running, while
// later session renewals retry internally.
func (c *Controller) Start(rawQuery string) error {
	query, err := ParseQuery(rawQuery)
	if err != nil {
		return err
	}

	window := c.Window
	if window <= 0 {
		window = DefaultWindow
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.retire()
	c.store.Clear()
	metrics.RecordsCurrent.Set(0)

	ctx, cancel := context.WithCancel(context.Background())
	t := &task{query: query, store: c.store, browser: c.browser, window: window}
	entries, endSession, err := t.openSession(ctx)
	if err != nil {
		cancel()
		logging.Error("failed to start scan",
			zap.String("query", query.String()),
			zap.Error(err),
		)
		return fmt.Errorf("start scan for %q: %w", query.String(), err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		t.run(ctx, entries, endSession)
	}()

	c.current = &handle{query: query, cancel: cancel, done: done}
	metrics.ScansStarted.Inc()
	logging.Info("scan started",
		zap.String("query", query.String()),
		zap.Duration("window", window),
	)
	return nil
}

// Shutdown cancels the running scan, if any, and returns once its task
// has fully exited. Safe to call repeatedly and when no scan runs.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retire()
}

// Query returns the query of the live scan and whether one is running.
func (c *Controller) Query() (Query, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Query{}, false
	}
	return c.current.query, true
}

// retire cancels the current task and waits for it to exit. Caller
// holds c.mu.
func (c *Controller) retire() {
	if c.current == nil {
		return
	}
	c.current.cancel()
	<-c.current.done
	logging.Debug("scan retired", zap.String("query", c.current.query.String()))
	c.current = nil
}
