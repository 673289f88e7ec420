package scan

import (
	"context"

	"github.com/grandcat/zeroconf"
)

// Browser opens one discovery session. Implementations stream resolved
// service entries into the channel until ctx ends, then close it. An
// error is returned only when the session could not be opened at all;
// problems with individual responses stay inside the session.
//
// The production implementation wraps grandcat/zeroconf. Tests supply
// their own.
type Browser interface {
	Browse(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error
}

// zeroconfBrowser opens a fresh resolver for every session. A new
// resolver re-sends the browse query and re-reports services the
// previous session already delivered, which is what lets a long-lived
// scan notice address changes.
type zeroconfBrowser struct{}

func (zeroconfBrowser) Browse(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return &ScanError{Kind: ErrKindResolver, Err: err}
	}
	if err := resolver.Browse(ctx, service, domain, entries); err != nil {
		return &ScanError{Kind: ErrKindBrowse, Err: err}
	}
	return nil
}
