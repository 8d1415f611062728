package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "simple", raw: "a=1&b=2"},
		{name: "empty segment between tokens", raw: "a=1&&b=2"},
		{name: "keyless value", raw: "=value"},
		{name: "flag and empty values", raw: "flag&key=&value=data"},
		{name: "trailing delimiter", raw: "a=1&"},
		{name: "leading delimiter", raw: "&a=1"},
		{name: "bare equals", raw: "="},
		{name: "unicode keys and values", raw: "🚀=rocket&café=naïve"},
		{name: "percent-encoded", raw: "q=caf%C3%A9&x=%zz"},
		{name: "duplicate keys", raw: "a=1&a=2&a=1"},
		{name: "empty", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.raw, Parse(tt.raw).String())
		})
	}
}

func TestParseTokens(t *testing.T) {
	p := Parse("flag&key=&=value&a=b")
	require.Equal(t, 4, p.Len())

	assert.Equal(t, "flag", p.At(0).RawKey)
	assert.False(t, p.At(0).HasEquals)

	assert.Equal(t, "key", p.At(1).RawKey)
	assert.True(t, p.At(1).HasEquals)
	assert.Equal(t, "", p.At(1).RawValue)

	assert.Equal(t, "", p.At(2).RawKey)
	assert.True(t, p.At(2).HasEquals)
	assert.Equal(t, "value", p.At(2).RawValue)

	assert.Equal(t, "a", p.At(3).RawKey)
	assert.Equal(t, "b", p.At(3).RawValue)
}

func TestParseSemicolon(t *testing.T) {
	p := ParseSemicolon("a=1;b=2&c=3")
	require.Equal(t, 3, p.Len())
	// Output normalizes to '&' regardless of the input delimiter.
	assert.Equal(t, "a=1&b=2&c=3", p.String())

	// Without semicolon acceptance the whole segment is one token.
	q := Parse("a=1;b=2")
	require.Equal(t, 1, q.Len())
	assert.Equal(t, "a", q.At(0).RawKey)
	assert.Equal(t, "1;b=2", q.At(0).RawValue)
}

func TestDecodedViews(t *testing.T) {
	p := Parse("caf%C3%A9=na%C3%AFve&%F0%9F%9A%80=rocket")
	assert.Equal(t, "café", p.At(0).DecodedKey())
	assert.Equal(t, "naïve", p.At(0).DecodedValue())
	assert.Equal(t, "🚀", p.At(1).DecodedKey())

	// Cached view is stable across calls.
	assert.Equal(t, p.At(0).DecodedKey(), p.At(0).DecodedKey())
}

func TestAdd(t *testing.T) {
	p := Parse("a=1")

	raw := p.AddRaw("k%20", "v%20")
	assert.Equal(t, "a=1&k%20=v%20", raw.String())

	dec := p.AddDecoded("k v", "w&x")
	assert.Equal(t, "a=1&k%20v=w%26x", dec.String())

	// Original instance untouched.
	assert.Equal(t, "a=1", p.String())
}

func TestRemovePreservesOrder(t *testing.T) {
	p := Parse("a=1&utm_source=x&b=2&utm_medium=y&c=3")

	got := p.Remove("utm_source")
	assert.Equal(t, "a=1&b=2&utm_medium=y&c=3", got.String())

	got = p.RemoveWhere(func(k string) bool { return len(k) > 1 })
	assert.Equal(t, "a=1&b=2&c=3", got.String())

	got = p.RemoveAnyOf(
		func(k string) bool { return k == "a" },
		func(k string) bool { return k == "c" },
	)
	assert.Equal(t, "utm_source=x&b=2&utm_medium=y", got.String())

	// No predicates removes nothing.
	assert.Equal(t, p.String(), p.RemoveAnyOf().String())
}

func TestFilterKeys(t *testing.T) {
	p := Parse("a=1&b=2&a=3&c=4")
	got := p.FilterKeys(func(k string) bool { return k == "a" || k == "c" })
	assert.Equal(t, "a=1&a=3&c=4", got.String())
}

func TestGetAllGetFirst(t *testing.T) {
	p := Parse("a=1&b=2&a=%33")

	assert.Equal(t, []string{"1", "3"}, p.GetAll("a"))

	v, ok := p.GetFirst("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = p.GetFirst("missing")
	assert.False(t, ok)
}

func TestRemoveMatchesDecodedKey(t *testing.T) {
	p := Parse("caf%C3%A9=1&other=2")
	got := p.Remove("café")
	assert.Equal(t, "other=2", got.String())
}
