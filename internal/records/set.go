package records

import (
	"net/netip"
	"sort"
)

// Set is an ordered collection of bindings with at most one binding per
// (family, host) slot. The zero value is an empty set ready for use.
//
// Iteration order is family, then address, then host. The order exists
// so identical contents always render identically; it carries no other
// meaning.
type Set struct {
	bindings []Binding
}

// Apply merges a batch of bindings into the set. Each incoming binding
// evicts whatever currently occupies its slot, so the newest address for
// a (family, host) pair always wins. Applying the same batch twice
// leaves the set unchanged.
func (s *Set) Apply(batch []Binding) {
	for _, b := range batch {
		kept := s.bindings[:0]
		for _, existing := range s.bindings {
			if !existing.SameSlot(b) {
				kept = append(kept, existing)
			}
		}
		s.bindings = append(kept, b)
	}
	sort.Slice(s.bindings, func(i, j int) bool {
		return s.bindings[i].compare(s.bindings[j]) < 0
	})
}

// Lookup returns the addresses recorded for host, one per family. The
// zero netip.Addr marks a family with no binding. If the set ever held
// duplicate slots the sort-order-last one would win, which keeps the
// result deterministic.
func (s *Set) Lookup(host string) (ipv4, ipv6 netip.Addr) {
	for _, b := range s.bindings {
		if b.Host != host {
			continue
		}
		switch b.Family {
		case IPv4:
			ipv4 = b.Addr
		case IPv6:
			ipv6 = b.Addr
		}
	}
	return ipv4, ipv6
}

// Hosts returns the distinct host names in set order, first occurrence
// wins. One entry per host regardless of how many families it binds.
func (s *Set) Hosts() []string {
	seen := make(map[string]bool, len(s.bindings))
	var hosts []string
	for _, b := range s.bindings {
		if seen[b.Host] {
			continue
		}
		seen[b.Host] = true
		hosts = append(hosts, b.Host)
	}
	return hosts
}

// Bindings returns a copy of the bindings in set order.
func (s *Set) Bindings() []Binding {
	out := make([]Binding, len(s.bindings))
	copy(out, s.bindings)
	return out
}

// Len returns the number of bindings in the set.
func (s *Set) Len() int {
	return len(s.bindings)
}

// clone returns an independent copy of the set.
func (s *Set) clone() Set {
	return Set{bindings: s.Bindings()}
}
