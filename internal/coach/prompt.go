package coach

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a calculus tutor helping a student practice integration techniques. You explain mistakes briefly and never give away the final answer.`

func buildUserMessage(input Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Integrand: %s\n", input.Function)
	fmt.Fprintf(&b, "Technique: %s\n", input.TechniqueName)
	fmt.Fprintf(&b, "Student answer: %s\n", input.Answer)
	fmt.Fprintf(&b, "Reference antiderivative: %s\n", input.CorrectAnswer)
	fmt.Fprintf(&b, "Checker verdict: %s", input.Verdict.Kind)
	if input.Verdict.Reason != "" {
		fmt.Fprintf(&b, " (%s)", input.Verdict.Reason)
	}
	b.WriteString("\n")

	if len(input.RevealedHints) > 0 {
		b.WriteString("\nHints already shown:\n")
		for _, h := range input.RevealedHints {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}

	b.WriteString(`
Instructions:
1. The checker has already decided the answer is not fully correct. Do not re-judge it.
2. Name the most likely mistake in 1-3 sentences. Compare the student's answer to the reference only to find the mistake.
3. Give one hint that moves the student toward the fix. Do not write the reference antiderivative or any rearrangement of it.
4. Do not repeat hints that were already shown.
5. Use plain ASCII math. Use ^ for powers and * for multiplication. No LaTeX.`)

	return b.String()
}
