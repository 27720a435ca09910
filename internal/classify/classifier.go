// Package classify guesses an integration technique for a function by
// matching it against an ordered list of surface patterns.
package classify

import "github.com/abhisek/calctutor/internal/technique"

// Result is the outcome of classifying one input.
type Result struct {
	Technique   technique.Technique
	Difficulty  technique.Difficulty
	Description string

	// Rule names the rule that matched, or "fallback".
	Rule string
}

// Rule is a pattern test over a normalized input (lowercase, no whitespace).
// Match returns the result and true if the rule applies.
type Rule interface {
	Name() string
	Match(normalized string) (Result, bool)
}

// DefaultRules returns the rules in priority order. Polynomials are checked
// first, and trigonometric patterns win over exponential ones, so
// "sin(x)*e^x" is classified as trig.
func DefaultRules() []Rule {
	return []Rule{
		&PolynomialRule{},
		&TrigRule{},
		&ExpLogRule{},
		&RationalRule{},
	}
}

// Run tests the rules in order and returns the first match, or the
// fallback result if none apply.
func Run(rules []Rule, normalized string) Result {
	for _, r := range rules {
		if res, ok := r.Match(normalized); ok {
			res.Rule = r.Name()
			return res
		}
	}
	return Fallback()
}

// Fallback is the result used when no rule matches.
func Fallback() Result {
	return Result{
		Technique:   technique.Substitution,
		Difficulty:  technique.Medium,
		Description: "No specific pattern recognized. Try u-substitution as a general strategy.",
		Rule:        "fallback",
	}
}

// Classify normalizes input and runs the default rules. It accepts any
// string, including the empty string, and never fails.
func Classify(input string) Result {
	return Run(DefaultRules(), technique.NormalizeInput(input))
}
