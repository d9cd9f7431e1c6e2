package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/discochess/enginemetrics/internal/config"
)

var (
	// Global flags.
	cfgFile string
	verbose bool

	v   = config.New()
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "enginemetrics",
	Short: "Performance analytics for chess engines",
	Long: `enginemetrics ingests chess engine games (PGN), metric exports (JSON),
and analysis notes (Markdown) into a knowledge base, and answers
natural-language questions about engine performance.

Examples:
  # Run the HTTP API
  enginemetrics serve

  # Ingest a game file
  enginemetrics ingest games.pgn

  # Ask a question
  enginemetrics query "Which engine performs best in blitz?"

  # Show the aggregated results of one engine
  enginemetrics summary --engine V7P3R`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		log, err = newLogger(cfg.Logging, v.GetBool("verbose"))
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./enginemetrics.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	cobra.CheckErr(v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")))
}

// newLogger builds a JSON production logger, or a console development
// logger when verbose is set or the configured format is console.
func newLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if verbose || lc.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// bindFlag binds a command flag to a viper key so the config file and
// environment supply its default.
func bindFlag(vp *viper.Viper, key string, cmd *cobra.Command, flag string) {
	cobra.CheckErr(vp.BindPFlag(key, cmd.Flags().Lookup(flag)))
}
