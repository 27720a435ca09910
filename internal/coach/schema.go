package coach

import "github.com/abhisek/calctutor/internal/llm"

// ExplanationSchema defines the JSON schema for mistake explanations.
var ExplanationSchema = &llm.Schema{
	Name:        "mistake-explanation",
	Description: "A short explanation of a likely mistake in an antiderivative",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title naming the mistake (3-8 words)",
			},
			"mistake": map[string]any{
				"type":        "string",
				"description": "What the learner most likely did wrong (1-3 sentences)",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "A nudge toward the fix that does not state the final answer",
			},
		},
		"required":             []any{"title", "mistake", "hint"},
		"additionalProperties": false,
	},
}
