package urlview

import (
	"strconv"
	"strings"

	"github.com/bnema/urlclean/internal/query"
)

// Parts is a full URL decomposition. Optional components that distinguish
// empty-but-present from absent (userinfo, port, fragment) use pointers;
// scheme, host and path use "" for absent.
type Parts struct {
	Scheme   string
	UserInfo *string
	Host     string
	Port     *int
	Path     string
	Query    query.Pairs
	Fragment *string
}

// String renders the URL deterministically: scheme://, userInfo@, host
// (IPv6 literals bracketed exactly once), :port whenever present (explicit
// default ports are never suppressed), path, ?query when non-empty,
// #fragment when present.
func (p Parts) String() string {
	var b strings.Builder

	if p.Scheme != "" {
		b.WriteString(p.Scheme)
		b.WriteString("://")
	}
	if p.UserInfo != nil {
		b.WriteString(*p.UserInfo)
		b.WriteByte('@')
	}
	b.WriteString(bracketHost(p.Host))
	if p.Port != nil {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(*p.Port))
	}
	b.WriteString(p.Path)
	if q := p.Query.String(); q != "" {
		b.WriteByte('?')
		b.WriteString(q)
	}
	if p.Fragment != nil {
		b.WriteByte('#')
		b.WriteString(*p.Fragment)
	}
	return b.String()
}

// WithQuery returns a copy of p with the query replaced and every other
// field untouched.
func (p Parts) WithQuery(q query.Pairs) Parts {
	p.Query = q
	return p
}

// bracketHost wraps literal IPv6 forms in exactly one bracket pair. Hosts
// already carrying any bracket, including malformed partial ones, are
// preserved verbatim rather than fixed; IPv4 and hostnames pass through.
func bracketHost(host string) string {
	if !strings.Contains(host, ":") {
		return host
	}
	if strings.ContainsAny(host, "[]") {
		return host
	}
	return "[" + host + "]"
}
