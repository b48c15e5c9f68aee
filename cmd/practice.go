package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/skillbridge/internal/app"
	"github.com/abhisek/skillbridge/internal/llm"
	"github.com/abhisek/skillbridge/internal/store"
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		AttemptRepo: st.AttemptRepo(),
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Falling back to offline scoring and template coaching.")
	} else {
		opts.LLMProvider = provider
	}

	return app.Run(opts)
}
