package server

import (
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/calctutor/internal/answer"
)

var validate = validator.New()

// ClassifyRequest is the body of POST /v1/classify.
type ClassifyRequest struct {
	Function string `json:"function" validate:"required,max=512"`
}

// ClassifyResponse describes the technique picked for a function. The
// answer itself is not returned, only whether one is known.
type ClassifyResponse struct {
	Technique   string `json:"technique"`
	Name        string `json:"name"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
	Rule        string `json:"rule"`
	HintCount   int    `json:"hintCount"`
	StepCount   int    `json:"stepCount"`
	HasAnswer   bool   `json:"hasAnswer"`
}

// ValidateRequest is the body of POST /v1/validate. An empty answer is
// allowed and yields an "empty" verdict.
type ValidateRequest struct {
	Function string `json:"function" validate:"required,max=512"`
	Answer   string `json:"answer" validate:"max=512"`
	Attempt  int    `json:"attempt" validate:"gte=1"`
}

// VerdictResponse mirrors answer.Verdict for the browser widget.
type VerdictResponse struct {
	IsValid         bool   `json:"isValid"`
	IsCorrect       bool   `json:"isCorrect"`
	Kind            string `json:"kind"`
	Reason          string `json:"reason,omitempty"`
	Rule            string `json:"rule,omitempty"`
	Message         string `json:"message"`
	FeedbackLevel   string `json:"feedbackLevel"`
	Attempt         int    `json:"attempt"`
	MaxAttempts     int    `json:"maxAttempts"`
	HasMoreAttempts bool   `json:"hasMoreAttempts"`
}

func newVerdictResponse(v answer.Verdict) VerdictResponse {
	return VerdictResponse{
		IsValid:         v.IsValid,
		IsCorrect:       v.IsCorrect,
		Kind:            string(v.Kind),
		Reason:          string(v.Reason),
		Rule:            v.Rule,
		Message:         v.Message,
		FeedbackLevel:   string(v.Feedback),
		Attempt:         v.Attempt,
		MaxAttempts:     v.MaxAttempts,
		HasMoreAttempts: v.HasMoreAttempts,
	}
}

// RevealQuery is the query string of GET /v1/hints and GET /v1/steps.
type RevealQuery struct {
	Function string `form:"function" validate:"required,max=512"`
	Index    int    `form:"index" validate:"gte=0"`
}

// RevealResponse carries one hint or step.
type RevealResponse struct {
	Index int    `json:"index"`
	Total int    `json:"total"`
	Text  string `json:"text"`
}

// TechniqueSummary is one entry of GET /v1/techniques.
type TechniqueSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
	HintCount   int    `json:"hintCount"`
	StepCount   int    `json:"stepCount"`
}
