package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/calctutor/internal/technique"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-technique accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.EventRepo().TechniqueStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No practice recorded yet.")
			return nil
		}

		catalog := technique.Default()
		fmt.Printf("%-32s  %8s  %7s  %7s  %5s  %5s  %8s\n",
			"Technique", "Attempts", "Correct", "Partial", "Hints", "Steps", "Accuracy")
		fmt.Println(strings.Repeat("─", 84))

		var attempts, correct int
		for _, st := range stats {
			name := st.Technique
			if t, ok := technique.Parse(st.Technique); ok {
				name = catalog.Name(t)
			}
			fmt.Printf("%-32s  %8d  %7d  %7d  %5d  %5d  %7.0f%%\n",
				truncate(name, 32), st.Attempts, st.Correct, st.Partial, st.Hints, st.Steps, st.Accuracy()*100)
			attempts += st.Attempts
			correct += st.Correct
		}

		fmt.Println(strings.Repeat("─", 84))
		var acc float64
		if attempts > 0 {
			acc = float64(correct) / float64(attempts) * 100
		}
		fmt.Printf("%-32s  %8d  %7d  %7s  %5s  %5s  %7.0f%%\n", "TOTAL", attempts, correct, "", "", "", acc)
		return nil
	},
}
