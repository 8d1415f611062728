package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapGrouping(t *testing.T) {
	m := NewMap(Parse("a=1&b=2&a=3"))

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Equal(t, []string{"1", "3"}, m.Get("a"))

	v, ok := m.GetFirst("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	assert.True(t, m.Has("a"))
	assert.False(t, m.Has("z"))
}

func TestMapSetKeepsFirstOccurrencePosition(t *testing.T) {
	m := NewMap(Parse("a=1&b=2&a=3&c=4"))

	got := m.Set("a", "9")
	assert.Equal(t, "a=9&b=2&c=4", got.Pairs().String())

	got = m.Set("a", "x", "y")
	assert.Equal(t, "a=x&a=y&b=2&c=4", got.Pairs().String())
}

func TestMapSetAppendsNewKey(t *testing.T) {
	m := NewMap(Parse("a=1"))
	got := m.Set("new", "v")
	assert.Equal(t, "a=1&new=v", got.Pairs().String())
}

func TestMapSetEncodesOnWrite(t *testing.T) {
	m := NewMap(Parse("a=1"))
	got := m.Set("k v", "w&x")
	assert.Equal(t, "a=1&k%20v=w%26x", got.Pairs().String())
}

func TestMapDeleteAndAppend(t *testing.T) {
	m := NewMap(Parse("a=1&b=2&a=3"))

	assert.Equal(t, "b=2", m.Delete("a").Pairs().String())
	assert.Equal(t, "a=1&b=2&a=3&d=4", m.Append("d", "4").Pairs().String())

	// Source map is unchanged by either operation.
	assert.Equal(t, "a=1&b=2&a=3", m.Pairs().String())
}
