package urlview

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/urlclean/internal/query"
)

// Tokenizer extracts raw URL components. Implementations own host/port/path
// extraction, including IPv6 zone-ID percent normalization.
type Tokenizer interface {
	Tokenize(raw string) (Parts, error)
}

// StdTokenizer tokenizes with net/url.
type StdTokenizer struct {
	// AcceptSemicolon also treats ';' as a query delimiter on input.
	AcceptSemicolon bool
}

func (t StdTokenizer) Tokenize(raw string) (Parts, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Parts{}, err
	}

	parts := Parts{
		Scheme: u.Scheme,
		Host:   zoneEscaped(u.Hostname()),
		Path:   u.EscapedPath(),
	}
	if t.AcceptSemicolon {
		parts.Query = query.ParseSemicolon(u.RawQuery)
	} else {
		parts.Query = query.Parse(u.RawQuery)
	}
	if u.User != nil {
		ui := u.User.String()
		parts.UserInfo = &ui
	}
	if ps := u.Port(); ps != "" {
		n, err := strconv.Atoi(ps)
		if err != nil {
			return Parts{}, err
		}
		parts.Port = &n
	}
	// net/url reports an empty fragment for both "no #" and a trailing "#";
	// the raw string disambiguates presence.
	if u.Fragment != "" || strings.Contains(raw, "#") {
		f := u.EscapedFragment()
		parts.Fragment = &f
	}
	return parts, nil
}

// zoneEscaped restores the percent escape of an IPv6 zone delimiter.
// net/url unescapes "%25" inside the host, so Hostname() reports
// "fe80::1%en0"; a bare '%' in a host can only come from that escape.
func zoneEscaped(host string) string {
	if !strings.Contains(host, ":") {
		return host
	}
	return strings.Replace(host, "%", "%25", 1)
}
