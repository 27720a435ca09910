package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/calctutor/internal/session"
	"github.com/abhisek/calctutor/internal/technique"
)

var hintsCmd = &cobra.Command{
	Use:   "hints <function>",
	Short: "Print the hints (and optionally the worked steps) for a function",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		withSteps, _ := cmd.Flags().GetBool("steps")

		p := session.Start(args[0], technique.Default())
		seq := p.Sequencer

		fmt.Printf("%s\n\nHints\n", p.TechniqueName)
		for i, h := range seq.Hints(seq.HintCount()) {
			fmt.Printf("  %d. %s\n", i+1, h)
		}

		if withSteps {
			fmt.Println("\nSteps")
			for i, s := range seq.Steps(seq.StepCount()) {
				fmt.Printf("  %d. %s\n", i+1, s)
			}
		}
		return nil
	},
}

func init() {
	hintsCmd.Flags().Bool("steps", false, "Also print the worked solution steps")
}
