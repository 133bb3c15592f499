package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"hours-reconciliation/internal/config"
	"hours-reconciliation/internal/extract"
	"hours-reconciliation/internal/gateway"
	"hours-reconciliation/internal/usecase"
)

var (
	stagingPath string
	verbose     bool
	jsonOutput  bool

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "reconciler",
	Short: "Reconcile a monthly attendance report against the hours ledger",
	Long: `reconciler reads the monthly attendance report exported by the portal
(xlsx, xls, csv or PDF), stages it as a canonical local_data.xlsx and
compares it with the period sheet of the remote hours ledger.

Empty ledger cells are filled from the report; cells that already hold a
value are never overwritten, their differences go to a change report sheet.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(verbose, cfg)})
		logger = slog.New(handler).With(slog.String("run_id", uuid.NewString()))
		slog.SetDefault(logger)

		if !cmd.Flags().Changed("staging") {
			stagingPath = cfg.Source.StagingPath
		}
		return nil
	},
}

func logLevel(verbose bool, c config.Config) slog.Level {
	if verbose || c.Debug.Verbose || c.Debug.PDF {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&stagingPath, "staging", "local_data.xlsx", "path of the canonical staging file (STAGING_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the result as JSON instead of a table")
}

// sourceArg returns the source document named on the command line or in SOURCE_FILE.
func sourceArg(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Source.File != "" {
		return cfg.Source.File, nil
	}
	return "", fmt.Errorf("no source document: pass a path or set SOURCE_FILE")
}

func newNormalizeUseCase() *usecase.NormalizeUseCase {
	source := gateway.NewDocumentRepository(gateway.SourceOptions{
		DebugPDF: cfg.Debug.PDF,
		SaveRaw:  cfg.Debug.SaveRaw,
		Extract: extract.Options{
			StripBidi:     cfg.PDF.StripBidi,
			ReverseHebrew: cfg.PDF.ReverseHebrew,
		},
	}, logger)
	return usecase.NewNormalizeUseCase(source, gateway.NewStagingWriter(), logger)
}
