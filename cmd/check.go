package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/calctutor/internal/answer"
	"github.com/abhisek/calctutor/internal/coach"
	"github.com/abhisek/calctutor/internal/session"
	"github.com/abhisek/calctutor/internal/technique"
)

var checkCmd = &cobra.Command{
	Use:   "check <function> <answer>",
	Short: "Check an antiderivative",
	Long: `Check an antiderivative against the stored answer for the function.

--attempt is the attempt number (1-3); on the last attempt a wrong answer
reveals the correct one. --explain asks the configured LLM coach to
explain a partial or wrong answer.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		attempt, _ := cmd.Flags().GetInt("attempt")
		explain, _ := cmd.Flags().GetBool("explain")
		if attempt < 1 {
			return fmt.Errorf("--attempt must be at least 1, got %d", attempt)
		}

		p := session.Start(args[0], technique.Default())
		v := answer.Validate(args[1], p.CorrectAnswer, attempt)

		fmt.Printf("Technique: %s\n", p.TechniqueName)
		fmt.Printf("Verdict:   %s", v.Kind)
		if v.Reason != answer.ReasonNone {
			fmt.Printf(" (%s)", v.Reason)
		}
		fmt.Println()
		fmt.Println(v.Message)
		if v.HasMoreAttempts && !v.IsCorrect && v.Kind != answer.KindEmpty {
			fmt.Printf("Attempts left: %d\n", v.MaxAttempts-v.Attempt)
		}

		if !explain || !coach.Applicable(v) || !p.HasAnswer() {
			return nil
		}
		return printExplanation(cmd.Context(), coach.Input{
			Function:      p.Input,
			TechniqueName: p.TechniqueName,
			Answer:        args[1],
			CorrectAnswer: p.CorrectAnswer,
			Verdict:       v,
		})
	},
}

func printExplanation(ctx context.Context, input coach.Input) error {
	svc, _, err := newCoach(ctx, nil)
	if errors.Is(err, errNoProvider) {
		fmt.Println("\nNo LLM provider configured; set CALCTUTOR_LLM_PROVIDER to enable --explain.")
		return nil
	}
	if err != nil {
		return err
	}

	exp, err := svc.Explain(ctx, input)
	if err != nil {
		return fmt.Errorf("explain: %w", err)
	}
	fmt.Printf("\n%s\n%s\nTry: %s\n", exp.Title, exp.Mistake, exp.Hint)
	return nil
}

func init() {
	checkCmd.Flags().Int("attempt", 1, "Attempt number (1-3)")
	checkCmd.Flags().Bool("explain", false, "Ask the LLM coach to explain a wrong answer")
}
