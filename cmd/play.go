package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/calctutor/internal/app"
	"github.com/abhisek/calctutor/internal/technique"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive tutor",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// runTUI opens the store, builds the optional coach and launches the TUI.
func runTUI(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	deps := app.Deps{
		Catalog: technique.Default(),
		Repo:    st.EventRepo(),
		Status:  "coach off",
	}

	svc, provider, err := newCoach(cmd.Context(), st.EventRepo())
	switch {
	case err == nil:
		deps.Coach = svc
		deps.Status = "coach: " + provider.ModelID()
	case errors.Is(err, errNoProvider):
		logger.Info("coach disabled", "reason", err)
	default:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Mistake explanations will be unavailable.")
	}

	return app.Run(deps)
}
