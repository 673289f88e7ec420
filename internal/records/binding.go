package records

import (
	"fmt"
	"net/netip"
	"strings"
)

// Family identifies the address family of a binding.
type Family uint8

const (
	// IPv4 marks bindings built from A records.
	IPv4 Family = iota
	// IPv6 marks bindings built from AAAA records.
	IPv6
)

// String returns the conventional family name.
func (f Family) String() string {
	switch f {
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	default:
		return fmt.Sprintf("Family(%d)", f)
	}
}

// Binding is one discovered fact: a host name bound to a single address
// of one family. The family is fixed at construction so consumers switch
// on Family instead of re-inspecting the address.
type Binding struct {
	Family Family
	Addr   netip.Addr
	Host   string
}

// NewBinding classifies addr and pairs it with host. IPv4-mapped IPv6
// addresses are unmapped first so they occupy the same slot as the plain
// IPv4 form of the address.
func NewBinding(addr netip.Addr, host string) Binding {
	addr = addr.Unmap()
	family := IPv6
	if addr.Is4() {
		family = IPv4
	}
	return Binding{Family: family, Addr: addr, Host: host}
}

// SameSlot reports whether o occupies the same (family, host) slot.
// Bindings in one slot replace each other; only the address may differ.
func (b Binding) SameSlot(o Binding) bool {
	return b.Family == o.Family && b.Host == o.Host
}

// String renders the binding the way it reads in a log line.
func (b Binding) String() string {
	return fmt.Sprintf("%s %s %s", b.Host, b.Family, b.Addr)
}

// compare defines the set order: family, then address, then host.
func (b Binding) compare(o Binding) int {
	if b.Family != o.Family {
		if b.Family < o.Family {
			return -1
		}
		return 1
	}
	if c := b.Addr.Compare(o.Addr); c != 0 {
		return c
	}
	return strings.Compare(b.Host, o.Host)
}
