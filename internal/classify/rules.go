package classify

import (
	"regexp"
	"strings"

	"github.com/abhisek/calctutor/internal/technique"
)

// polynomialPattern matches a signed sum of monomials in x. Every term needs
// a coefficient or an x, so the empty string does not match.
var polynomialPattern = regexp.MustCompile(`^[+-]?(?:\d+x?|x)(?:\^\d+)?(?:[+-](?:\d+x?|x)(?:\^\d+)?)*$`)

// PolynomialRule classifies sums of powers of x as power-rule problems.
type PolynomialRule struct{}

func (r *PolynomialRule) Name() string { return "polynomial" }

func (r *PolynomialRule) Match(s string) (Result, bool) {
	if !polynomialPattern.MatchString(s) {
		return Result{}, false
	}
	return Result{
		Technique:   technique.Power,
		Difficulty:  technique.Easy,
		Description: "Polynomial detected. Apply the power rule to each term.",
	}, true
}

// TrigRule classifies anything containing sin(, cos( or tan(.
type TrigRule struct{}

func (r *TrigRule) Name() string { return "trigonometric" }

func (r *TrigRule) Match(s string) (Result, bool) {
	if !containsAny(s, "sin(", "cos(", "tan(") {
		return Result{}, false
	}
	return Result{
		Technique:   technique.Trig,
		Difficulty:  technique.Medium,
		Description: "Trigonometric function detected. Use standard trig antiderivatives and identities.",
	}, true
}

// ExpLogRule classifies exponentials and logarithms. A "*" is read as a
// product of two factors and sends the input to integration by parts.
type ExpLogRule struct{}

func (r *ExpLogRule) Name() string { return "exponential-logarithmic" }

func (r *ExpLogRule) Match(s string) (Result, bool) {
	if !containsAny(s, "e^", "ln") {
		return Result{}, false
	}
	if strings.Contains(s, "*") {
		return Result{
			Technique:   technique.Parts,
			Difficulty:  technique.Hard,
			Description: "Product with an exponential or logarithm detected. Try integration by parts.",
		}, true
	}
	return Result{
		Technique:   technique.Substitution,
		Difficulty:  technique.Medium,
		Description: "Exponential or logarithmic function detected. Try u-substitution.",
	}, true
}

// RationalRule classifies quotients as partial-fraction problems.
type RationalRule struct{}

func (r *RationalRule) Name() string { return "rational" }

func (r *RationalRule) Match(s string) (Result, bool) {
	if !strings.Contains(s, "/") {
		return Result{}, false
	}
	return Result{
		Technique:   technique.Partial,
		Difficulty:  technique.Hard,
		Description: "Rational function detected. Decompose it into partial fractions.",
	}, true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
