package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/fx"

	"github.com/discochess/enginemetrics"
	"github.com/discochess/enginemetrics/fx/enginemetricsfx"
)

// withClient starts the configured client, runs fn, and shuts it down.
func withClient(ctx context.Context, fn func(context.Context, *enginemetrics.Client) error) error {
	var client *enginemetrics.Client
	app := fx.New(
		fx.Supply(cfg, log),
		enginemetricsfx.Module,
		fx.Populate(&client),
		fx.NopLogger,
	)
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("starting client: %w", err)
	}
	defer func() {
		if err := app.Stop(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: stopping client: %v\n", err)
		}
	}()

	return fn(ctx, client)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
