package codec

import "strings"

const upperhex = "0123456789ABCDEF"

// isUnreserved reports whether c may appear unescaped per RFC 3986 §2.3.
func isUnreserved(c byte) bool {
	if 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' {
		return true
	}
	switch c {
	case '-', '.', '_', '~':
		return true
	}
	return false
}

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// Encode percent-encodes every byte of the UTF-8 encoding of s except the
// RFC 3986 unreserved characters. Multi-byte characters encode as one run of
// %XX tokens. Hex digits are uppercase regardless of locale.
func Encode(s string) string {
	hex := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			hex++
		}
	}
	if hex == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*hex)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

// Decode percent-decodes s. A '%' followed by two hex digits contributes one
// byte; contiguous %XX runs therefore reassemble into multi-byte UTF-8
// sequences naturally. Anything else, including a dangling or malformed '%',
// is copied through verbatim. Decode never fails and never treats '+' as a
// space.
func Decode(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 3
			continue
		}
		out = append(out, s[i])
		i++
	}
	return string(out)
}
