// Package answer checks a learner's antiderivative against the expected one
// using string normalization, a few surface rewrites and near-miss
// heuristics. It does not do algebra.
package answer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/calctutor/internal/technique"
)

const (
	emptyMessage    = "Please enter your answer first!"
	noAnswerMessage = "There is no stored answer for this exact function, so it can't be checked here. Differentiate your result to check it yourself."
)

var firstDigitRun = regexp.MustCompile(`\d+`)

// Validate compares user against correct for the given attempt number.
// Any input is accepted; garbage falls through to an incorrect verdict.
func Validate(user, correct string, attempt int) Verdict {
	return ValidateWith(DefaultRewrites(), user, correct, attempt)
}

// ValidateWith is Validate with a caller-supplied rewrite list.
func ValidateWith(rewrites []Rewrite, user, correct string, attempt int) Verdict {
	v := Verdict{
		IsValid:         true,
		Attempt:         attempt,
		MaxAttempts:     MaxAttempts,
		HasMoreAttempts: attempt < MaxAttempts,
	}

	if strings.TrimSpace(user) == "" {
		v.IsValid = false
		v.Kind = KindEmpty
		v.Feedback = FeedbackError
		v.Message = emptyMessage
		return v
	}

	u := Normalize(user)
	c := Normalize(correct)

	if u == c {
		v.IsCorrect = true
		v.Kind = KindExact
		v.Feedback = FeedbackSuccess
		v.Message = "Correct! Well done."
		return v
	}

	if rule, ok := Equivalent(rewrites, u, c); ok {
		v.IsCorrect = true
		v.Kind = KindEquivalent
		v.Rule = rule
		v.Feedback = FeedbackSuccess
		v.Message = "Correct! Your answer is equivalent to the expected form."
		return v
	}

	if reason := partialReason(u, c); reason != ReasonNone {
		v.Kind = KindPartial
		v.Reason = reason
		v.Feedback = FeedbackWarning
		v.Message = partialMessage(reason)
		return v
	}

	v.Kind = KindIncorrect
	v.Feedback = FeedbackError
	if correct == technique.UnknownAnswer {
		v.Feedback = FeedbackInfo
		v.Message = noAnswerMessage
		return v
	}
	if v.HasMoreAttempts {
		remaining := MaxAttempts - attempt
		v.Message = fmt.Sprintf("Not quite. You have %d %s left.", remaining, plural(remaining, "attempt", "attempts"))
	} else {
		v.Message = fmt.Sprintf("Not quite. The correct answer is %s.", strings.TrimSpace(correct))
	}
	return v
}

func partialReason(u, c string) PartialReason {
	switch {
	case u+"c" == c || u == c+"c":
		return ReasonMissingConstant
	case u == strings.TrimPrefix(c, "-") || u == "-"+c:
		return ReasonSign
	case sameUpToCoefficient(u, c):
		return ReasonCoefficient
	}
	return ReasonNone
}

// sameUpToCoefficient replaces the first digit run on each side with "1".
// Both sides need a digit run, otherwise any pair of equal strings without
// digits would count.
func sameUpToCoefficient(u, c string) bool {
	ui := firstDigitRun.FindStringIndex(u)
	ci := firstDigitRun.FindStringIndex(c)
	if ui == nil || ci == nil {
		return false
	}
	return u[:ui[0]]+"1"+u[ui[1]:] == c[:ci[0]]+"1"+c[ci[1]:]
}

func partialMessage(r PartialReason) string {
	switch r {
	case ReasonMissingConstant:
		return "Almost! Don't forget the constant of integration (+C)."
	case ReasonSign:
		return "Close! Check the sign of your answer."
	case ReasonCoefficient:
		return "Close! The form is right but a coefficient is off."
	}
	return ""
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
