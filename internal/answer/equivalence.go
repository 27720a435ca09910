package answer

import (
	"regexp"
	"strings"
)

// Rewrite is a surface-syntax rewrite of a normalized answer. It is not
// algebra: each rule recognizes one spelling and produces another.
// Apply returns the rewritten string and true if the rule applied.
type Rewrite interface {
	Name() string
	Apply(normalized string) (string, bool)
}

// DefaultRewrites returns the equivalence rewrites tried against the
// learner's normalized answer, in order.
func DefaultRewrites() []Rewrite {
	return []Rewrite{
		&regexRewrite{
			name:    "half-decimal",
			pattern: regexp.MustCompile(`^0?\.5(.+)$`),
			replace: "$1/2",
			term:    1,
		},
		&regexRewrite{
			name:    "unit-fraction-parenthesized",
			pattern: regexp.MustCompile(`^\(1/(\d+)\)(.+)$`),
			replace: "$2/$1",
			term:    2,
		},
		&regexRewrite{
			name:    "unit-fraction-prefix",
			pattern: regexp.MustCompile(`^1/(\d+)([a-z(].*)$`),
			replace: "$2/$1",
			term:    2,
		},
		&regexRewrite{
			name:    "log-absolute-value",
			pattern: regexp.MustCompile(`ln\(([^()]+)\)`),
			replace: "ln|$1|",
		},
		&swapTermsRewrite{},
	}
}

// Equivalent reports whether any rewrite of user equals correct, and which
// rule produced the match. Both arguments must already be normalized.
func Equivalent(rewrites []Rewrite, user, correct string) (string, bool) {
	for _, r := range rewrites {
		if out, ok := r.Apply(user); ok && out == correct {
			return r.Name(), true
		}
	}
	return "", false
}

// regexRewrite applies pattern once. When term is non-zero, that capture
// group becomes a numerator and must be a single term, otherwise "0.5-cos(x)"
// would read as "-cos(x)/2".
type regexRewrite struct {
	name    string
	pattern *regexp.Regexp
	replace string
	term    int
}

func (r *regexRewrite) Name() string { return r.name }

func (r *regexRewrite) Apply(s string) (string, bool) {
	m := r.pattern.FindStringSubmatch(s)
	if m == nil {
		return s, false
	}
	if r.term > 0 && !singleTerm(m[r.term]) {
		return s, false
	}
	return r.pattern.ReplaceAllString(s, r.replace), true
}

// singleTerm reports whether s is one product-like term: it does not start
// with a digit or a sign and has no "+" or "-" outside parentheses, except
// a negative exponent right after "^".
func singleTerm(s string) bool {
	if s == "" || isDigit(s[0]) || s[0] == '.' {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '+', '-':
			if depth == 0 && (i == 0 || s[i-1] != '^') {
				return false
			}
		}
	}
	return true
}

// swapTermsRewrite turns "a+b" into "b+a" when the answer has exactly two
// top-level terms joined by "+".
type swapTermsRewrite struct{}

func (r *swapTermsRewrite) Name() string { return "swap-terms" }

func (r *swapTermsRewrite) Apply(s string) (string, bool) {
	split := -1
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '+':
			if depth != 0 || i == 0 {
				continue
			}
			if split >= 0 {
				return s, false
			}
			split = i
		case '-':
			if depth == 0 && i > 0 && s[i-1] != '^' && s[i-1] != '(' {
				// A top-level subtraction makes the swap change meaning.
				return s, false
			}
		}
	}
	if split <= 0 || split == len(s)-1 {
		return s, false
	}
	left, right := s[:split], s[split+1:]
	left = strings.TrimPrefix(left, "+")
	if strings.HasPrefix(left, "-") {
		return right + left, true
	}
	return right + "+" + left, true
}
