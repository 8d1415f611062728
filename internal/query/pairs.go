package query

import (
	"strings"

	"github.com/bnema/urlclean/internal/codec"
)

// Pairs is an ordered, immutable sequence of query tokens. Order, duplicates
// and empty segments are preserved exactly as parsed; every mutator returns a
// new instance.
type Pairs struct {
	tokens []Token
}

// Parse tokenizes a raw query string on '&'.
func Parse(raw string) Pairs {
	return parse(raw, false)
}

// ParseSemicolon tokenizes a raw query string accepting ';' as an additional
// input delimiter. Serialization always joins with '&'.
func ParseSemicolon(raw string) Pairs {
	return parse(raw, true)
}

func parse(raw string, semicolon bool) Pairs {
	if raw == "" {
		return Pairs{}
	}

	var tokens []Token
	start := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '&' || (semicolon && c == ';') {
			tokens = append(tokens, parseToken(raw[start:i]))
			start = i + 1
		}
	}
	tokens = append(tokens, parseToken(raw[start:]))
	return Pairs{tokens: tokens}
}

// FromTokens builds Pairs from an explicit token sequence.
func FromTokens(tokens []Token) Pairs {
	cp := make([]Token, len(tokens))
	copy(cp, tokens)
	return Pairs{tokens: cp}
}

// String reassembles the original wire form, segments joined by '&'.
func (p Pairs) String() string {
	if len(p.tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for i, t := range p.tokens {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// Len returns the number of tokens, including empty segments.
func (p Pairs) Len() int {
	return len(p.tokens)
}

// At returns the token at index i.
func (p Pairs) At(i int) Token {
	return p.tokens[i]
}

// Tokens returns a copy of the token sequence.
func (p Pairs) Tokens() []Token {
	cp := make([]Token, len(p.tokens))
	copy(cp, p.tokens)
	return cp
}

func (p Pairs) with(tokens []Token) Pairs {
	return Pairs{tokens: tokens}
}

// AddRaw appends a key=value token verbatim, without encoding.
func (p Pairs) AddRaw(key, value string) Pairs {
	tokens := append(p.Tokens(), NewToken(key, true, value))
	return p.with(tokens)
}

// AddDecoded percent-encodes key and value before appending.
func (p Pairs) AddDecoded(key, value string) Pairs {
	return p.AddRaw(codec.Encode(key), codec.Encode(value))
}

// Remove drops every token whose decoded key equals key, preserving the
// relative order of survivors.
func (p Pairs) Remove(key string) Pairs {
	return p.RemoveWhere(func(k string) bool { return k == key })
}

// RemoveWhere drops every token whose decoded key satisfies pred.
func (p Pairs) RemoveWhere(pred func(decodedKey string) bool) Pairs {
	return p.FilterKeys(func(k string) bool { return !pred(k) })
}

// RemoveAnyOf drops every token whose decoded key satisfies any predicate.
func (p Pairs) RemoveAnyOf(preds ...func(decodedKey string) bool) Pairs {
	return p.RemoveWhere(func(k string) bool {
		for _, pred := range preds {
			if pred(k) {
				return true
			}
		}
		return false
	})
}

// FilterKeys keeps only tokens whose decoded key satisfies keep.
func (p Pairs) FilterKeys(keep func(decodedKey string) bool) Pairs {
	tokens := make([]Token, 0, len(p.tokens))
	for _, t := range p.tokens {
		if keep(t.DecodedKey()) {
			tokens = append(tokens, t)
		}
	}
	return p.with(tokens)
}

// GetAll returns the decoded values of every token whose decoded key equals
// key, in order.
func (p Pairs) GetAll(key string) []string {
	var vals []string
	for _, t := range p.tokens {
		if t.DecodedKey() == key {
			vals = append(vals, t.DecodedValue())
		}
	}
	return vals
}

// GetFirst returns the decoded value of the first token matching key.
func (p Pairs) GetFirst(key string) (string, bool) {
	for _, t := range p.tokens {
		if t.DecodedKey() == key {
			return t.DecodedValue(), true
		}
	}
	return "", false
}
