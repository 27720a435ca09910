package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/calctutor/internal/store"
	"github.com/abhisek/calctutor/internal/technique"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		tech, _ := cmd.Flags().GetString("technique")
		if tech != "" {
			if _, ok := technique.Parse(tech); !ok {
				return fmt.Errorf("unknown technique %q", tech)
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.EventRepo().QueryAttempts(cmd.Context(), store.QueryOpts{Limit: limit, Technique: tech})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-12s  %-20s  %-20s  %-10s  %s\n",
			"ID", "Timestamp", "Technique", "Function", "Answer", "Verdict", "Try")
		fmt.Println(strings.Repeat("─", 100))
		for _, a := range attempts {
			kind := a.Kind
			if a.Reason != "" {
				kind += "/" + a.Reason
			}
			fmt.Printf("%-5d  %-19s  %-12s  %-20s  %-20s  %-10s  %d\n",
				a.Sequence,
				a.Timestamp.Local().Format("2006-01-02 15:04:05"),
				a.Technique,
				truncate(a.Function, 20),
				truncate(a.Answer, 20),
				kind,
				a.Attempt,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().StringP("technique", "t", "", "Only show one technique (power, substitution, trig, parts, partial)")
}
