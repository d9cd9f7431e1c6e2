package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/discochess/enginemetrics"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [FILE]",
	Short: "Ingest a local PGN, JSON, or Markdown file",
	Long: `Parse a local file and store its analysis in the knowledge base.

The type is inferred from the extension (.pgn, .json, .md) unless --type
is given.

Examples:
  enginemetrics ingest tournament.pgn
  enginemetrics ingest --type markdown notes.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var ingestType string

func init() {
	ingestCmd.Flags().StringVarP(&ingestType, "type", "t", "", "content type: pgn, json, or markdown")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	typ := enginemetrics.IngestType(ingestType)
	if typ == "" {
		var err error
		if typ, err = typeFromExtension(path); err != nil {
			return err
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	return withClient(cmd.Context(), func(ctx context.Context, client *enginemetrics.Client) error {
		res, err := client.Ingest(ctx, enginemetrics.IngestRequest{
			Content:  string(content),
			Type:     typ,
			Metadata: map[string]any{"fileName": filepath.Base(path)},
		})
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
		return printJSON(res)
	})
}

func typeFromExtension(path string) (enginemetrics.IngestType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pgn":
		return enginemetrics.TypePGN, nil
	case ".json":
		return enginemetrics.TypeJSON, nil
	case ".md", ".markdown":
		return enginemetrics.TypeMarkdown, nil
	default:
		return "", fmt.Errorf("cannot infer type of %q; use --type", path)
	}
}
