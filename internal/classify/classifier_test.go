package classify

import (
	"testing"

	"github.com/abhisek/calctutor/internal/technique"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input      string
		technique  technique.Technique
		difficulty technique.Difficulty
		rule       string
	}{
		{"x^2", technique.Power, technique.Easy, "polynomial"},
		{"3x^2 + 2x - 7", technique.Power, technique.Easy, "polynomial"},
		{"-x", technique.Power, technique.Easy, "polynomial"},
		{"5", technique.Power, technique.Easy, "polynomial"},
		{"X^3", technique.Power, technique.Easy, "polynomial"},
		{"sin(x)", technique.Trig, technique.Medium, "trigonometric"},
		{"TAN( x )", technique.Trig, technique.Medium, "trigonometric"},
		{"e^x", technique.Substitution, technique.Medium, "exponential-logarithmic"},
		{"ln(x)", technique.Substitution, technique.Medium, "exponential-logarithmic"},
		{"x*e^x", technique.Parts, technique.Hard, "exponential-logarithmic"},
		{"x * ln(x)", technique.Parts, technique.Hard, "exponential-logarithmic"},
		{"1/(x^2-1)", technique.Partial, technique.Hard, "rational"},
		{"sqrt(x)", technique.Substitution, technique.Medium, "fallback"},
		{"", technique.Substitution, technique.Medium, "fallback"},
		{"   ", technique.Substitution, technique.Medium, "fallback"},
		{"\x00\xff\xfe", technique.Substitution, technique.Medium, "fallback"},
		{"x^", technique.Substitution, technique.Medium, "fallback"},
		{"+", technique.Substitution, technique.Medium, "fallback"},
	}

	for _, tc := range tests {
		got := Classify(tc.input)
		if got.Technique != tc.technique || got.Difficulty != tc.difficulty {
			t.Errorf("Classify(%q) = %s/%s, want %s/%s", tc.input, got.Technique, got.Difficulty, tc.technique, tc.difficulty)
		}
		if got.Rule != tc.rule {
			t.Errorf("Classify(%q) matched rule %q, want %q", tc.input, got.Rule, tc.rule)
		}
		if got.Description == "" {
			t.Errorf("Classify(%q) returned empty description", tc.input)
		}
	}
}

func TestClassify_TrigBeatsExponential(t *testing.T) {
	// Matches both the trig and the exp/log pattern; trig is ordered first.
	got := Classify("sin(x)*e^x")
	if got.Technique != technique.Trig {
		t.Errorf("Classify(sin(x)*e^x) = %s, want trig", got.Technique)
	}
}

func TestClassify_ExponentialBeatsRational(t *testing.T) {
	got := Classify("e^x/2")
	if got.Technique != technique.Substitution {
		t.Errorf("Classify(e^x/2) = %s, want substitution", got.Technique)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	inputs := []string{"x^2", "sin(x)", "x*e^x", "1/x", "", "garbage"}
	for _, in := range inputs {
		first := Classify(in)
		for i := 0; i < 5; i++ {
			if got := Classify(in); got != first {
				t.Errorf("Classify(%q) changed between calls: %+v vs %+v", in, first, got)
			}
		}
	}
}

func TestClassify_AnswerKeysMatchTheirTechnique(t *testing.T) {
	c := technique.Default()
	for _, tech := range c.Techniques() {
		e, _ := c.Entry(tech)
		for key := range e.Answers {
			if got := Classify(key).Technique; got != tech {
				t.Errorf("answer key %q is filed under %s but classifies as %s", key, tech, got)
			}
		}
	}
}

type alwaysRule struct{}

func (alwaysRule) Name() string { return "always" }
func (alwaysRule) Match(string) (Result, bool) {
	return Result{Technique: technique.Parts, Difficulty: technique.Hard, Description: "always"}, true
}

func TestRun_CustomRulesFirstMatchWins(t *testing.T) {
	rules := append([]Rule{alwaysRule{}}, DefaultRules()...)
	got := Run(rules, "x^2")
	if got.Rule != "always" || got.Technique != technique.Parts {
		t.Errorf("Run with leading custom rule = %+v", got)
	}
}

func TestRun_NoRules(t *testing.T) {
	if got := Run(nil, "x^2"); got != Fallback() {
		t.Errorf("Run(nil) = %+v, want fallback", got)
	}
}
