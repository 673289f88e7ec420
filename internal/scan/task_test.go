package scan

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/TommyGymer/mdns-client/internal/records"
)

func TestEntryBindings(t *testing.T) {
	tests := []struct {
		name      string
		entry     *zeroconf.ServiceEntry
		wantHosts []string
		wantV4    int
		wantV6    int
	}{
		{
			name:      "both families",
			entry:     serviceEntry("web.local.", []string{"192.168.1.10"}, []string{"fe80::10"}),
			wantHosts: []string{"web.local", "web.local"},
			wantV4:    1,
			wantV6:    1,
		},
		{
			name:      "multiple addresses one family",
			entry:     serviceEntry("nas.local.", []string{"10.0.0.1", "10.0.0.2"}, nil),
			wantHosts: []string{"nas.local", "nas.local"},
			wantV4:    2,
		},
		{
			name:      "mapped address in the v6 slice counts as IPv4",
			entry:     serviceEntry("box.local.", nil, []string{"::ffff:10.0.0.7"}),
			wantHosts: []string{"box.local"},
			wantV4:    1,
		},
		{
			name:  "no addresses",
			entry: serviceEntry("mute.local.", nil, nil),
		},
		{
			name:  "empty host name",
			entry: serviceEntry("", []string{"10.0.0.1"}, nil),
		},
		{
			name:  "nil entry",
			entry: nil,
		},
		{
			name: "malformed address skipped",
			entry: &zeroconf.ServiceEntry{
				HostName: "odd.local.",
				AddrIPv4: []net.IP{{0x7f}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := entryBindings(tt.entry)
			if len(batch) != len(tt.wantHosts) {
				t.Fatalf("got %d bindings, want %d: %v", len(batch), len(tt.wantHosts), batch)
			}
			var v4, v6 int
			for i, b := range batch {
				if b.Host != tt.wantHosts[i] {
					t.Errorf("binding %d host = %q, want %q", i, b.Host, tt.wantHosts[i])
				}
				switch b.Family {
				case records.IPv4:
					v4++
				case records.IPv6:
					v6++
				}
			}
			if v4 != tt.wantV4 || v6 != tt.wantV6 {
				t.Errorf("families = %d v4 / %d v6, want %d / %d", v4, v6, tt.wantV4, tt.wantV6)
			}
		})
	}
}

func TestTaskRenewsSessions(t *testing.T) {
	fb := newFakeBrowser()
	fb.feed("_svc._tcp", serviceEntry("box.local.", []string{"10.1.1.1"}, nil))

	store := records.NewStore()
	c := NewController(store)
	c.browser = fb
	c.Window = 25 * time.Millisecond

	if err := c.Start("_svc._tcp.local"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer c.Shutdown()

	waitFor(t, func() bool { return fb.openCount() >= 3 }, "session was never renewed")

	// Re-reported entries from later sessions collapse into the same
	// slot, so the store does not grow.
	if got := store.Len(); got != 1 {
		t.Errorf("store Len = %d after renewals, want 1", got)
	}
	for _, service := range fb.openedServices() {
		if service != "_svc._tcp" {
			t.Errorf("renewed session browsed %q, want _svc._tcp", service)
		}
	}
}

func TestTaskRenewalRetriesAfterOpenError(t *testing.T) {
	fb := newFakeBrowser()
	fb.feed("_svc._tcp", serviceEntry("box.local.", []string{"10.1.1.1"}, nil))
	// First renewal (attempt 1) fails; the task must retry, not die.
	fb.failOpen(1, &ScanError{Kind: ErrKindBrowse, Err: errors.New("send failed")})

	store := records.NewStore()
	c := NewController(store)
	c.browser = fb
	c.Window = 25 * time.Millisecond

	if err := c.Start("_svc._tcp.local"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer c.Shutdown()

	waitFor(t, func() bool { return fb.openCount() >= 2 }, "scan died on a failed renewal")
}

func TestTaskStopsMidStream(t *testing.T) {
	entries := make([]*zeroconf.ServiceEntry, 0, 64)
	for i := 0; i < 64; i++ {
		entries = append(entries, serviceEntry("flood.local.", []string{"10.9.9.9"}, nil))
	}
	fb := newFakeBrowser()
	fb.feed("_flood._tcp", entries...)

	store := records.NewStore()
	c := NewController(store)
	c.browser = fb
	c.Window = time.Minute

	if err := c.Start("_flood._tcp.local"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.Shutdown()

	// Shutdown returned, so the task has exited; nothing may be applied
	// afterwards even though the feeder still held pending entries.
	n := store.Len()
	time.Sleep(30 * time.Millisecond)
	if got := store.Len(); got != n {
		t.Errorf("store grew from %d to %d after Shutdown", n, got)
	}
	waitFor(t, func() bool { return fb.closedCount() == 1 }, "session never observed cancellation")
}
