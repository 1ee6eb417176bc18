package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vitos/vault_scanner/internal/domain"
	"github.com/vitos/vault_scanner/internal/infrastructure/config"
	"github.com/vitos/vault_scanner/internal/infrastructure/expand"
	"github.com/vitos/vault_scanner/internal/infrastructure/logger"
	"github.com/vitos/vault_scanner/internal/usecase"
)

type options struct {
	aggregator string
	chain      string
	token      string
	raw        bool
	limit      int
	configPath string
	envFile    string
	logFile    string
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "getvaults",
		Short:         "List Yearn vaults on Ethereum for WETH, sorted by netAPR (--raw for the full JSON)",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), stdout, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.aggregator, "aggregator", domain.AggregatorYearn, "yield aggregator (only yearn is supported)")
	flags.StringVar(&opts.chain, "chain", domain.ChainEthereum, "chain (only ethereum is supported)")
	flags.StringVar(&opts.token, "token", "", "token address (accepted, the query always uses WETH)")
	flags.BoolVar(&opts.raw, "raw", false, "print the raw JSON response")
	flags.IntVar(&opts.limit, "limit", usecase.DefaultLimit, "number of vaults to print")
	flags.StringVar(&opts.configPath, "config", config.DefaultPath, "optional yaml config file")
	flags.StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "optional dotenv file")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	return cmd
}

func run(ctx context.Context, stdout io.Writer, opts *options) error {
	// 1. Load Config
	cfg, err := config.Load(opts.configPath, opts.envFile)
	if err != nil {
		return err
	}

	// 2. Init Logger
	log, err := newLogger(opts.logFile, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer log.Sync()

	// 3. Validate selection before any request is built
	selection := domain.Selection{Aggregator: opts.aggregator, Chain: opts.chain, Token: opts.token}
	query, err := selection.Query()
	if err != nil {
		return err
	}
	if opts.token != "" {
		log.Debug("Ignoring --token, query is fixed to WETH", zap.String("token", opts.token))
	}

	// 4. Init Adapter and Service
	adapter := expand.NewExpandAdapter(cfg.Expand.APIKey, cfg.Expand.BaseURL, log)
	svc := usecase.NewVaultService(adapter, log)

	// 5. Report
	return svc.Report(ctx, stdout, query, usecase.ReportOptions{Raw: opts.raw, Limit: opts.limit})
}

func newLogger(path, level string) (*zap.Logger, error) {
	if path != "" {
		return logger.NewFileLogger(path, level)
	}
	return logger.NewLogger(level)
}

func recoverPanic() {
	if rec := recover(); rec != nil {
		fmt.Fprintln(os.Stderr, "panic:", rec)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
