package scan

import "strings"

// DefaultDomain is the browse domain assumed when a query does not name
// one. mDNS discovery lives in "local." almost without exception.
const DefaultDomain = "local."

// Query is a parsed service query: the DNS-SD service type plus the
// domain to browse it in.
type Query struct {
	Service string
	Domain  string
}

// ParseQuery splits a raw query like "_http._tcp.local" into service
// type and domain. The domain part is optional ("_http._tcp" browses
// "local."), and a trailing dot is tolerated. Only emptiness is rejected
// here; whether the rest names a real service type is for the network to
// answer.
func ParseQuery(raw string) (Query, error) {
	q := strings.TrimSpace(raw)
	q = strings.TrimSuffix(q, ".")
	if q == "" {
		return Query{}, &ScanError{Kind: ErrKindQuery, Err: ErrEmptyQuery}
	}

	// The domain starts after the protocol label. "_ipp._tcp.example.com"
	// browses "example.com.", everything before it is the service type.
	for _, proto := range []string{"._tcp", "._udp"} {
		idx := strings.LastIndex(q, proto)
		if idx < 0 {
			continue
		}
		rest := q[idx+len(proto):]
		if rest != "" && !strings.HasPrefix(rest, ".") {
			continue
		}
		domain := strings.TrimPrefix(rest, ".")
		if domain == "" {
			domain = DefaultDomain
		} else {
			domain += "."
		}
		return Query{Service: q[:idx+len(proto)], Domain: domain}, nil
	}

	// No protocol label. Strip a plain ".local" suffix if present and
	// let the resolver judge what remains.
	if service := strings.TrimSuffix(q, ".local"); service != q && service != "" {
		return Query{Service: service, Domain: DefaultDomain}, nil
	}
	return Query{Service: q, Domain: DefaultDomain}, nil
}

// String returns the query in its single-string form, without the
// trailing dot.
func (q Query) String() string {
	return strings.TrimSuffix(q.Service+"."+q.Domain, ".")
}
