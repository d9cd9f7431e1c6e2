package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/discochess/enginemetrics"
)

var queryCmd = &cobra.Command{
	Use:   "query [QUESTION]",
	Short: "Ask a question about engine performance",
	Long: `Classify a natural-language question, retrieve matching knowledge-base
data, and print the generated answer.

Examples:
  enginemetrics query "Compare SlowMate vs C0BR4 performance"
  enginemetrics query --json "How has V7P3R improved since v2.0?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

var (
	queryJSON bool
	queryUser string
)

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output result as JSON")
	queryCmd.Flags().StringVar(&queryUser, "user", "", "user ID recorded in the query log")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	return withClient(cmd.Context(), func(ctx context.Context, client *enginemetrics.Client) error {
		res, err := client.Query(ctx, enginemetrics.QueryRequest{
			Query:  strings.Join(args, " "),
			UserID: queryUser,
		})
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}

		if queryJSON {
			return printJSON(res)
		}

		fmt.Println(res.Response.Answer)
		fmt.Println()
		fmt.Printf("Intent:     %s\n", res.Intent.Type)
		fmt.Printf("Confidence: %.2f\n", res.Response.Confidence)
		fmt.Printf("Sources:    %s\n", strings.Join(res.Response.Sources, "; "))
		if len(res.Response.Recommendations) > 0 {
			fmt.Println("Recommendations:")
			for _, r := range res.Response.Recommendations {
				fmt.Printf("  - %s\n", r)
			}
		}
		return nil
	})
}
