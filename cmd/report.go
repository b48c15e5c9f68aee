package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/report"
	"github.com/abhisek/skillbridge/internal/store"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the progress report",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		repo := st.AttemptRepo()

		attempts, err := repo.Recent(ctx, limit)
		if sessionID != "" {
			attempts, err = repo.BySession(ctx, sessionID)
		}
		if err != nil {
			return fmt.Errorf("load attempts: %w", err)
		}

		sum := report.Build(attempts)
		if sum.TotalAttempts == 0 {
			fmt.Println("No answers recorded yet.")
			return nil
		}

		sep := strings.Repeat("─", 56)

		fmt.Println("Progress Report")
		fmt.Println(sep)
		fmt.Printf("Answers:        %d\n", sum.TotalAttempts)
		fmt.Printf("Average:        %.1f\n", sum.AverageTotal)
		fmt.Printf("Excellent:      %d (%d and up)\n", sum.ExcellentCount, report.ExcellentThreshold)
		if sum.LatestTotal != nil {
			fmt.Printf("Latest:         %d\n", *sum.LatestTotal)
		}
		if sum.Improvement != nil {
			fmt.Printf("Improvement:    %+d\n", *sum.Improvement)
		}
		fmt.Printf("Follow-ups:     %d\n", sum.ClarificationCount)
		if sum.DegradedCount > 0 {
			fmt.Printf("Degraded:       %d\n", sum.DegradedCount)
		}

		fmt.Println()
		fmt.Println("Dimensions")
		fmt.Println(sep)
		dims := make([]string, 0, len(sum.DimensionAverages))
		for d := range sum.DimensionAverages {
			dims = append(dims, d)
		}
		sort.Strings(dims)
		for _, d := range dims {
			fmt.Printf("%-16s %5.1f\n", d, sum.DimensionAverages[d])
		}
		if weakest := sum.Weakest(); weakest != "" {
			fmt.Printf("\nWeakest dimension: %s\n", weakest)
		}

		if len(sum.ByCategory) > 0 {
			fmt.Println()
			fmt.Println("Categories")
			fmt.Println(sep)
			cats := make([]string, 0, len(sum.ByCategory))
			for c := range sum.ByCategory {
				cats = append(cats, string(c))
			}
			sort.Strings(cats)
			for _, c := range cats {
				cs := sum.ByCategory[questionbank.Category(c)]
				fmt.Printf("%-16s %4d answered   avg %.1f\n", c, cs.Attempts, cs.AverageTotal)
			}
		}

		return nil
	},
}

func init() {
	reportCmd.Flags().IntP("limit", "n", 0, "Only include the N most recent answers (0 = all)")
	reportCmd.Flags().StringP("session", "s", "", "Report on a single session ID")
}
