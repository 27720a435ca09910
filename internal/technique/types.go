package technique

// Technique tags an integration method. It is a classification label,
// not a computed result.
type Technique string

const (
	Power        Technique = "power"
	Substitution Technique = "substitution"
	Parts        Technique = "parts"
	Trig         Technique = "trig"
	Partial      Technique = "partial"
)

// Difficulty is the fixed difficulty level attached to a technique.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// UnknownAnswer is returned by LookupAnswer when the exact input has no
// known antiderivative. It never equals a normalized learner answer.
const UnknownAnswer = "Answer depends on technique used"

// Entry is the static record for one technique.
type Entry struct {
	ID          Technique
	Name        string
	Difficulty  Difficulty
	Description string

	// Hints are revealed one at a time, in order.
	Hints []string

	// Steps are worked-solution templates. "{input}" and "{answer}" are
	// replaced with the problem's function and known answer.
	Steps []string

	// Answers maps an exact normalized input (lowercase, no whitespace)
	// to its antiderivative without the constant of integration.
	Answers map[string]string
}

// All lists every technique in display order.
func All() []Technique {
	return []Technique{Power, Substitution, Trig, Parts, Partial}
}

// Parse returns the technique named by s, or ("", false).
func Parse(s string) (Technique, bool) {
	for _, t := range All() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}
