package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/calctutor/internal/classify"
	"github.com/abhisek/calctutor/internal/technique"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <function>",
	Short: "Suggest an integration technique for a function",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		catalog := technique.Default()
		res := classify.Classify(args[0])
		logger.Debug("classified", "function", args[0], "technique", res.Technique, "rule", res.Rule)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"technique":   res.Technique,
				"name":        catalog.Name(res.Technique),
				"difficulty":  res.Difficulty,
				"description": res.Description,
				"rule":        res.Rule,
				"hasAnswer":   catalog.HasAnswer(args[0], res.Technique),
			})
		}

		fmt.Printf("Technique:   %s (%s)\n", catalog.Name(res.Technique), res.Technique)
		fmt.Printf("Difficulty:  %s\n", res.Difficulty)
		fmt.Printf("Rule:        %s\n", res.Rule)
		fmt.Printf("Description: %s\n", res.Description)
		if !catalog.HasAnswer(args[0], res.Technique) {
			fmt.Println("\nNo stored answer for this exact function; answers cannot be checked.")
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().Bool("json", false, "Print the classification as JSON")
}
