// Package session holds the state of one practice problem: the classified
// function, its looked-up answer, submissions and revealed hints and steps.
// The TUI and the HTTP API share it.
package session

import (
	"github.com/google/uuid"

	"github.com/abhisek/calctutor/internal/classify"
	"github.com/abhisek/calctutor/internal/technique"
)

// Problem is an analyzed function. It is immutable once started.
type Problem struct {
	ID    string
	Input string

	Classification classify.Result
	TechniqueName  string

	// CorrectAnswer is the looked-up antiderivative, or technique.UnknownAnswer.
	CorrectAnswer string

	Sequencer *technique.Sequencer
}

// Start classifies input and looks up its answer and hint sequence.
func Start(input string, catalog *technique.Catalog) *Problem {
	res := classify.Classify(input)
	correct := catalog.LookupAnswer(input, res.Technique)
	return &Problem{
		ID:             uuid.New().String(),
		Input:          input,
		Classification: res,
		TechniqueName:  catalog.Name(res.Technique),
		CorrectAnswer:  correct,
		Sequencer:      catalog.Sequencer(res.Technique, input, correct),
	}
}

// HasAnswer reports whether the answer table knows this exact input.
func (p *Problem) HasAnswer() bool {
	return p.CorrectAnswer != technique.UnknownAnswer
}
