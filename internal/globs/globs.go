package globs

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Pattern is a compiled parameter-name matcher. The grammar is '*' as the
// only wildcard (zero or more characters), anchored at both ends, with '\'
// escaping a literal; matching is case-insensitive.
type Pattern struct {
	source string
	g      glob.Glob
}

// Compile validates pattern against the supported grammar and compiles it.
// Grammar errors name the offending character and position so they can be
// surfaced at rule-load time.
func Compile(pattern string) (Pattern, error) {
	if err := checkGrammar(pattern); err != nil {
		return Pattern{}, err
	}
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %q: %w", pattern, err)
	}
	return Pattern{source: pattern, g: g}, nil
}

// MustCompile is Compile for patterns known valid at build time.
func MustCompile(pattern string) Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether name matches the whole pattern, case-insensitively.
func (p Pattern) Match(name string) bool {
	if p.g == nil {
		return false
	}
	return p.g.Match(strings.ToLower(name))
}

// String returns the original pattern text.
func (p Pattern) String() string {
	return p.source
}

// checkGrammar rejects metacharacters outside the '*'-only grammar. The
// underlying library would accept '?', '[...]' and '{...}', but rule files
// must stay portable across implementations that only know '*'.
func checkGrammar(pattern string) error {
	escaped := false
	for i, r := range pattern {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '?', '[', ']', '{', '}':
			return fmt.Errorf("pattern %q: unsupported wildcard %q at position %d (only '*' is allowed)", pattern, r, i)
		}
	}
	if escaped {
		return fmt.Errorf("pattern %q: trailing escape", pattern)
	}
	return nil
}
