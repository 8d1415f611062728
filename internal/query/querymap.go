package query

import "github.com/bnema/urlclean/internal/codec"

// Map is a grouped, decoded-key view over Pairs. Reads group values by
// decoded key in token order; writes rewrite the underlying Pairs, keeping
// the position of the first occurrence of an existing key and appending new
// keys at the end.
type Map struct {
	pairs Pairs
}

// NewMap wraps an existing Pairs.
func NewMap(p Pairs) Map {
	return Map{pairs: p}
}

// Pairs returns the underlying token sequence.
func (m Map) Pairs() Pairs {
	return m.pairs
}

// Keys returns decoded keys ordered by first occurrence, deduplicated.
func (m Map) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, t := range m.pairs.tokens {
		k := t.DecodedKey()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// Get returns all decoded values for key, in order.
func (m Map) Get(key string) []string {
	return m.pairs.GetAll(key)
}

// GetFirst returns the first decoded value for key.
func (m Map) GetFirst(key string) (string, bool) {
	return m.pairs.GetFirst(key)
}

// Has reports whether key occurs at least once.
func (m Map) Has(key string) bool {
	_, ok := m.pairs.GetFirst(key)
	return ok
}

// Set replaces all occurrences of key with the given values. The new tokens
// take the position of the first occurrence; if key is absent they are
// appended. Values are percent-encoded on write.
func (m Map) Set(key string, values ...string) Map {
	tokens := make([]Token, 0, m.pairs.Len()+len(values))
	replaced := false
	for _, t := range m.pairs.tokens {
		if t.DecodedKey() != key {
			tokens = append(tokens, t)
			continue
		}
		if !replaced {
			tokens = append(tokens, encodeTokens(key, values)...)
			replaced = true
		}
	}
	if !replaced {
		tokens = append(tokens, encodeTokens(key, values)...)
	}
	return Map{pairs: FromTokens(tokens)}
}

// Delete removes every occurrence of key.
func (m Map) Delete(key string) Map {
	return Map{pairs: m.pairs.Remove(key)}
}

// Append adds values for key at the end without touching existing tokens.
func (m Map) Append(key string, values ...string) Map {
	p := m.pairs
	for _, v := range values {
		p = p.AddDecoded(key, v)
	}
	return Map{pairs: p}
}

func encodeTokens(key string, values []string) []Token {
	tokens := make([]Token, 0, len(values))
	for _, v := range values {
		tokens = append(tokens, NewToken(codec.Encode(key), true, codec.Encode(v)))
	}
	return tokens
}
