package technique

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Catalog is the immutable technique table. Build it once with Default or
// New and share the pointer; nothing mutates it after construction.
type Catalog struct {
	entries map[Technique]*Entry
}

// New builds a catalog from the given entries after validating them.
// Entries are deep-copied so later changes to the arguments have no effect.
func New(entries []Entry) (*Catalog, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}
	c := &Catalog{entries: make(map[Technique]*Entry, len(entries))}
	for _, e := range entries {
		cp := e
		cp.Hints = slices.Clone(e.Hints)
		cp.Steps = slices.Clone(e.Steps)
		cp.Answers = maps.Clone(e.Answers)
		c.entries[e.ID] = &cp
	}
	return c, nil
}

// Default builds the catalog from the compiled-in seed table.
// It panics if the seed is invalid, which the package tests rule out.
func Default() *Catalog {
	c, err := New(seedEntries)
	if err != nil {
		panic(err)
	}
	return c
}

// Entry returns a copy of the record for t.
func (c *Catalog) Entry(t Technique) (Entry, bool) {
	e, ok := c.entries[t]
	if !ok {
		return Entry{}, false
	}
	cp := *e
	cp.Hints = slices.Clone(e.Hints)
	cp.Steps = slices.Clone(e.Steps)
	cp.Answers = maps.Clone(e.Answers)
	return cp, true
}

// Name returns the display name for t, or the raw tag if t is unknown.
func (c *Catalog) Name(t Technique) string {
	if e, ok := c.entries[t]; ok {
		return e.Name
	}
	return string(t)
}

// Techniques returns the catalog's techniques in display order.
func (c *Catalog) Techniques() []Technique {
	var out []Technique
	for _, t := range All() {
		if _, ok := c.entries[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// LookupAnswer returns the known antiderivative (without + C) for the exact
// normalized input, or UnknownAnswer when none is recorded.
func (c *Catalog) LookupAnswer(input string, t Technique) string {
	e, ok := c.entries[t]
	if !ok {
		return UnknownAnswer
	}
	if ans, ok := e.Answers[NormalizeInput(input)]; ok {
		return ans
	}
	return UnknownAnswer
}

// HasAnswer reports whether LookupAnswer would return a real answer.
func (c *Catalog) HasAnswer(input string, t Technique) bool {
	return c.LookupAnswer(input, t) != UnknownAnswer
}

// NormalizeInput lowercases s and removes all whitespace. It is the key
// form used for answer tables and for classification patterns.
func NormalizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// validateEntries performs structural checks on a technique table.
// Returns a combined error describing all problems found, or nil if valid.
func validateEntries(entries []Entry) error {
	var errs []string
	seen := make(map[Technique]bool, len(entries))

	for _, e := range entries {
		if _, ok := Parse(string(e.ID)); !ok {
			errs = append(errs, fmt.Sprintf("unknown technique %q", e.ID))
		}
		if seen[e.ID] {
			errs = append(errs, fmt.Sprintf("duplicate technique %q", e.ID))
		}
		seen[e.ID] = true

		if e.Name == "" {
			errs = append(errs, fmt.Sprintf("technique %q has no name", e.ID))
		}
		switch e.Difficulty {
		case Easy, Medium, Hard:
		default:
			errs = append(errs, fmt.Sprintf("technique %q has invalid difficulty %q", e.ID, e.Difficulty))
		}
		if len(e.Hints) == 0 {
			errs = append(errs, fmt.Sprintf("technique %q has no hints", e.ID))
		}
		for key, ans := range e.Answers {
			if key != NormalizeInput(key) {
				errs = append(errs, fmt.Sprintf("technique %q answer key %q is not normalized", e.ID, key))
			}
			if strings.TrimSpace(ans) == "" {
				errs = append(errs, fmt.Sprintf("technique %q answer for %q is empty", e.ID, key))
			}
		}
	}

	if len(errs) > 0 {
		slices.Sort(errs)
		return fmt.Errorf("technique catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
