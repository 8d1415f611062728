package urlview

import (
	"errors"
	"fmt"

	"github.com/bnema/urlclean/internal/query"
)

// Validation sentinels, matched with errors.Is.
var (
	ErrInvalidURL    = errors.New("invalid url")
	ErrMissingScheme = errors.New("missing scheme")
	ErrMissingHost   = errors.New("missing host")
)

// URL wraps Parts with a guarantee that scheme and host are present. It is
// only built through Parse.
type URL struct {
	parts Parts
}

// Parse tokenizes raw with tok and validates the result.
func Parse(raw string, tok Tokenizer) (URL, error) {
	parts, err := tok.Tokenize(raw)
	if err != nil {
		return URL{}, fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	if parts.Scheme == "" {
		return URL{}, fmt.Errorf("%w: %q", ErrMissingScheme, raw)
	}
	if parts.Host == "" {
		return URL{}, fmt.Errorf("%w: %q", ErrMissingHost, raw)
	}
	return URL{parts: parts}, nil
}

// Parts returns the underlying decomposition.
func (u URL) Parts() Parts {
	return u.parts
}

// Scheme returns the URL scheme, always non-empty.
func (u URL) Scheme() string {
	return u.parts.Scheme
}

// Host returns the URL host without brackets, always non-empty.
func (u URL) Host() string {
	return u.parts.Host
}

// HasUserInfo reports whether a non-empty userinfo component is present.
func (u URL) HasUserInfo() bool {
	return u.parts.UserInfo != nil && *u.parts.UserInfo != ""
}

// Query returns the query tokens.
func (u URL) Query() query.Pairs {
	return u.parts.Query
}

// WithQuery returns a copy of u with the query replaced.
func (u URL) WithQuery(q query.Pairs) URL {
	return URL{parts: u.parts.WithQuery(q)}
}

func (u URL) String() string {
	return u.parts.String()
}
