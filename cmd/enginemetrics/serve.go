package main

import (
	"context"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/discochess/enginemetrics"
	"github.com/discochess/enginemetrics/fx/enginemetricsfx"
	"github.com/discochess/enginemetrics/internal/config"
	"github.com/discochess/enginemetrics/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API until interrupted.

Stores, listen address, and metrics are taken from the config file and
ENGINEMETRICS_* environment variables. A store that cannot be reached at
startup is disabled with a warning; queries are then answered without data.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (default from server.host)")
	serveCmd.Flags().Int("port", 0, "listen port (default from server.port)")
	bindFlag(v, "server.host", serveCmd, "host")
	bindFlag(v, "server.port", serveCmd, "port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	app := fx.New(
		fx.Supply(cfg, log),
		enginemetricsfx.Module,
		fx.Provide(newServer),
		fx.Invoke(func(*server.Server) {}),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
	)
	app.Run()
	return app.Err()
}

// ServerParams holds dependencies for creating the HTTP server.
type ServerParams struct {
	fx.In

	Config     *config.Config
	Client     *enginemetrics.Client
	Registry   *prometheus.Registry
	Logger     *zap.Logger
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
}

func newServer(p ServerParams) *server.Server {
	opts := []server.Option{
		server.WithTimeouts(p.Config.Server.ReadTimeout, p.Config.Server.WriteTimeout),
		server.WithBodyLimit(p.Config.Server.BodyLimit),
		server.WithLogger(p.Logger),
	}
	if p.Config.Metrics.Enabled {
		opts = append(opts, server.WithMetrics(p.Registry))
	}
	srv := server.New(p.Client, opts...)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", p.Config.Server.Addr())
			if err != nil {
				return err
			}
			go func() {
				if err := srv.Serve(ln); err != nil {
					p.Logger.Error("server stopped", zap.Error(err))
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}
