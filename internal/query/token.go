package query

import (
	"sync"

	"github.com/bnema/urlclean/internal/codec"
)

// Token is one raw key[=value] unit of a query string. The raw fields are
// authoritative for serialization; decoded views are derived and cached.
type Token struct {
	RawKey    string
	HasEquals bool
	RawValue  string

	dec *decoded
}

// decoded memoizes the percent-decoded views. Tokens are copied by value, so
// the cell is shared by all copies of a token; decoding is pure, a racy
// recompute is harmless.
type decoded struct {
	keyOnce sync.Once
	key     string
	valOnce sync.Once
	val     string
}

// NewToken builds a token from raw, already-encoded parts.
func NewToken(rawKey string, hasEquals bool, rawValue string) Token {
	return Token{RawKey: rawKey, HasEquals: hasEquals, RawValue: rawValue, dec: &decoded{}}
}

// parseToken splits a raw segment at the first '=' if any.
func parseToken(segment string) Token {
	for i := 0; i < len(segment); i++ {
		if segment[i] == '=' {
			return NewToken(segment[:i], true, segment[i+1:])
		}
	}
	return NewToken(segment, false, "")
}

// String reproduces the token exactly as parsed.
func (t Token) String() string {
	if t.HasEquals {
		return t.RawKey + "=" + t.RawValue
	}
	return t.RawKey
}

// DecodedKey returns the percent-decoded key, computed once.
func (t Token) DecodedKey() string {
	if t.dec == nil {
		return codec.Decode(t.RawKey)
	}
	t.dec.keyOnce.Do(func() {
		t.dec.key = codec.Decode(t.RawKey)
	})
	return t.dec.key
}

// DecodedValue returns the percent-decoded value, computed once.
func (t Token) DecodedValue() string {
	if t.dec == nil {
		return codec.Decode(t.RawValue)
	}
	t.dec.valOnce.Do(func() {
		t.dec.val = codec.Decode(t.RawValue)
	})
	return t.dec.val
}
