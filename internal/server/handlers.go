package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/calctutor/internal/answer"
	"github.com/abhisek/calctutor/internal/classify"
	"github.com/abhisek/calctutor/internal/store"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listTechniques(c *gin.Context) {
	var out []TechniqueSummary
	for _, t := range s.catalog.Techniques() {
		e, _ := s.catalog.Entry(t)
		out = append(out, TechniqueSummary{
			ID:          string(e.ID),
			Name:        e.Name,
			Difficulty:  string(e.Difficulty),
			Description: e.Description,
			HintCount:   len(e.Hints),
			StepCount:   len(e.Steps),
		})
	}
	c.JSON(http.StatusOK, gin.H{"techniques": out})
}

func (s *Server) classifyFunction(c *gin.Context) {
	var req ClassifyRequest
	if !bindJSON(c, &req) {
		return
	}

	res := s.classifyAndCount(req.Function)
	seq := s.catalog.Sequencer(res.Technique, req.Function, "")
	c.JSON(http.StatusOK, ClassifyResponse{
		Technique:   string(res.Technique),
		Name:        s.catalog.Name(res.Technique),
		Difficulty:  string(res.Difficulty),
		Description: res.Description,
		Rule:        res.Rule,
		HintCount:   seq.HintCount(),
		StepCount:   seq.StepCount(),
		HasAnswer:   s.catalog.HasAnswer(req.Function, res.Technique),
	})
}

func (s *Server) validateAnswer(c *gin.Context) {
	var req ValidateRequest
	if !bindJSON(c, &req) {
		return
	}

	res := s.classifyAndCount(req.Function)
	correct := s.catalog.LookupAnswer(req.Function, res.Technique)
	v := answer.Validate(req.Answer, correct, req.Attempt)
	s.metrics.RecordVerdict(string(v.Kind), string(v.Reason))

	c.JSON(http.StatusOK, newVerdictResponse(v))
}

type revealKind int

const (
	revealHints revealKind = iota
	revealSteps
)

// reveal serves one hint or step by index. Steps are interpolated with the
// looked-up answer, so the final steps do contain it.
func (s *Server) reveal(kind revealKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q RevealQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query", "details": err.Error()})
			return
		}
		if err := validate.Struct(q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query", "details": describe(err)})
			return
		}

		res := s.classifyAndCount(q.Function)
		correct := s.catalog.LookupAnswer(q.Function, res.Technique)
		seq := s.catalog.Sequencer(res.Technique, q.Function, correct)

		var (
			text  string
			ok    bool
			total int
			label = store.RevealHint
		)
		switch kind {
		case revealSteps:
			text, ok = seq.NextStep(q.Index)
			total = seq.StepCount()
			label = store.RevealStep
		default:
			text, ok = seq.NextHint(q.Index)
			total = seq.HintCount()
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no %s at index %d", label, q.Index)})
			return
		}

		s.metrics.RecordReveal(string(label), string(res.Technique))
		c.JSON(http.StatusOK, RevealResponse{Index: q.Index, Total: total, Text: text})
	}
}

// classifyAndCount is the only way handlers classify, so the counter sees
// every endpoint that needs a technique.
func (s *Server) classifyAndCount(function string) classify.Result {
	res := classify.Classify(function)
	s.metrics.RecordClassification(string(res.Technique), res.Rule)
	return res
}

// bindJSON decodes and validates the body, writing a 400 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return false
	}
	if err := validate.Struct(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": describe(err)})
		return false
	}
	return true
}

// describe turns validator errors into "field: rule" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts[i] = strings.ToLower(fe.Field()) + ": " + rule
	}
	return strings.Join(parts, ", ")
}
