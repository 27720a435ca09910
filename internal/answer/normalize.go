package answer

import (
	"strings"
	"unicode"
)

// Normalize prepares an answer for comparison:
//   - lowercase, all whitespace removed
//   - a trailing "+c" or "+constant" removed
//   - every "*" removed
//   - "^1" removed where it is an exponent of one ("x^1" -> "x", "x^12" kept)
//
// The last three steps repeat until nothing changes, so Normalize is
// idempotent.
func Normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)

	for {
		next := stripConstant(s)
		next = strings.ReplaceAll(next, "*", "")
		next = stripUnitExponent(next)
		if next == s {
			return s
		}
		s = next
	}
}

func stripConstant(s string) string {
	for _, suffix := range []string{"+constant", "+c"} {
		if strings.HasSuffix(s, suffix) {
			return strings.TrimSuffix(s, suffix)
		}
	}
	return s
}

// stripUnitExponent drops "^1" occurrences not followed by another digit.
func stripUnitExponent(s string) string {
	if !strings.Contains(s, "^1") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '^' && i+1 < len(s) && s[i+1] == '1' && (i+2 >= len(s) || !isDigit(s[i+2])) {
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
