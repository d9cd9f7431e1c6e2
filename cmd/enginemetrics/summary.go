package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/enginemetrics"
	"github.com/discochess/enginemetrics/internal/performance"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show aggregated engine results",
	Long: `Merge the newest PGN analyses in the knowledge base and print win,
draw, and loss counts per engine.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

var (
	summaryEngine string
	summaryJSON   bool
)

func init() {
	summaryCmd.Flags().StringVarP(&summaryEngine, "engine", "e", "", "only show this engine")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	return withClient(cmd.Context(), func(ctx context.Context, client *enginemetrics.Client) error {
		summary, err := client.PerformanceSummary(ctx, summaryEngine)
		if err != nil {
			return fmt.Errorf("summary failed: %w", err)
		}

		if summaryJSON {
			return printJSON(summary)
		}

		if summary.Engines.Len() == 0 {
			fmt.Println("No engine results found.")
			fmt.Println("Run 'enginemetrics ingest' with a PGN file first.")
			return nil
		}

		fmt.Printf("%-16s %6s %6s %6s %6s %8s\n", "Engine", "Games", "Wins", "Draws", "Losses", "Win %")
		summary.Engines.Each(func(name string, s *performance.EngineStats) {
			fmt.Printf("%-16s %6d %6d %6d %6d %8.1f\n", name, s.Total, s.Wins, s.Draws, s.Losses, s.WinRate)
		})
		fmt.Printf("\nGames analyzed: %d\n", summary.TotalGamesAnalyzed)
		return nil
	})
}
