package scan

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

// fakeBrowser scripts discovery sessions. Each successful Browse feeds
// the entries configured for its service, then holds the channel open
// until the session context ends and closes it, the way the real
// resolver does.
type fakeBrowser struct {
	mu        sync.Mutex
	feeds     map[string][]*zeroconf.ServiceEntry
	failOpens map[int]error
	attempts  int
	opens     []string
	closed    int
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		feeds:     make(map[string][]*zeroconf.ServiceEntry),
		failOpens: make(map[int]error),
	}
}

func (f *fakeBrowser) feed(service string, entries ...*zeroconf.ServiceEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feeds[service] = entries
}

func (f *fakeBrowser) failOpen(attempt int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOpens[attempt] = err
}

func (f *fakeBrowser) Browse(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error {
	f.mu.Lock()
	attempt := f.attempts
	f.attempts++
	if err := f.failOpens[attempt]; err != nil {
		f.mu.Unlock()
		return err
	}
	f.opens = append(f.opens, service)
	batch := f.feeds[service]
	f.mu.Unlock()

	go func() {
		for _, e := range batch {
			select {
			case entries <- e:
			case <-ctx.Done():
				f.noteClosed()
				close(entries)
				return
			}
		}
		<-ctx.Done()
		f.noteClosed()
		close(entries)
	}()
	return nil
}

func (f *fakeBrowser) noteClosed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
}

func (f *fakeBrowser) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.opens)
}

func (f *fakeBrowser) closedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeBrowser) openedServices() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.opens))
	copy(out, f.opens)
	return out
}

// serviceEntry builds a resolver entry with the given host and addresses.
func serviceEntry(host string, ipv4, ipv6 []string) *zeroconf.ServiceEntry {
	e := &zeroconf.ServiceEntry{HostName: host}
	for _, a := range ipv4 {
		e.AddrIPv4 = append(e.AddrIPv4, net.ParseIP(a))
	}
	for _, a := range ipv6 {
		e.AddrIPv6 = append(e.AddrIPv6, net.ParseIP(a))
	}
	return e
}

// waitFor polls cond until it holds or two seconds pass.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}
