package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/diillson/finsight-dashboard-go/internal/application/usecase"
	"github.com/diillson/finsight-dashboard-go/internal/domain/repository"
	"github.com/diillson/finsight-dashboard-go/internal/log"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
	"github.com/diillson/finsight-dashboard-go/pkg/version"
	"github.com/spf13/cobra"
)

// UseCaseFactory builds the dashboard use case once the configuration is resolved.
type UseCaseFactory func(cfg *types.Config, logger *log.Logger) (*usecase.DashboardUseCase, error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	factory    UseCaseFactory
	version    string
	stdin      io.Reader
	quiet      bool

	args             *types.CLIArgs
	config           *types.Config
	dashboardUseCase *usecase.DashboardUseCase
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, factory UseCaseFactory) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		configRepo: configRepo,
		factory:    factory,
		stdin:      os.Stdin,
		args:       &types.CLIArgs{},
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:               "finsight",
		Short:             "FinSight personal finance dashboard CLI",
		Version:           formattedVersion,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
	}
	rootCmd.SetVersionTemplate(`{{printf "FinSight Dashboard version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&app.args.ConfigFile, "config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringVarP(&app.args.BackendURL, "backend-url", "b", types.DefaultBackendURL, "Base URL of the finance insights backend")
	flags.IntVar(&app.args.Timeout, "timeout", types.DefaultTimeoutSeconds, "Backend request timeout in seconds")
	flags.BoolVar(&app.args.Debug, "debug", false, "Log diagnostics to stderr")
	flags.StringVarP(&app.args.ReportName, "report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceVarP(&app.args.ReportType, "report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf, xlsx")
	flags.StringVarP(&app.args.Dir, "dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.StringVar(&app.args.ArchiveBucket, "archive-bucket", "", "S3 bucket exported reports are copied to")
	flags.StringVar(&app.args.ArchivePrefix, "archive-prefix", "", "Key prefix inside the archive bucket")
	flags.StringVar(&app.args.ArchiveRegion, "archive-region", "", "AWS region of the archive bucket")

	rootCmd.AddCommand(
		app.uploadCmd(),
		app.receiptCmd(),
		app.categorizeCmd(),
		app.savingsCmd(),
		app.analyzeCmd(),
		app.overviewCmd(),
		app.chatCmd(),
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI application with a cancellable context.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

func periodFlags(cmd *cobra.Command, args *types.CLIArgs) {
	cmd.Flags().StringVarP(&args.Month, "month", "m", "", "Month name, e.g. March")
	cmd.Flags().StringVar(&args.Year, "year", "", "Four-digit year within the last 50 years")
}

func (app *CLIApp) uploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a monthly bank statement",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.setFile(args)
			return app.dashboardUseCase.RunUpload(cmd.Context(), app.args)
		},
	}
	periodFlags(cmd, app.args)
	return cmd
}

func (app *CLIApp) receiptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipt FILE",
		Short: "Upload a receipt image and show the extracted details",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.setFile(args)
			return app.dashboardUseCase.RunReceipt(cmd.Context(), app.args)
		},
	}
	cmd.Flags().StringVarP(&app.args.TransactionType, "type", "t", "", "Transaction type: received or paid")
	return cmd
}

func (app *CLIApp) categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Show spending by category for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.dashboardUseCase.RunCategorize(cmd.Context(), app.args)
		},
	}
	periodFlags(cmd, app.args)
	return cmd
}

func (app *CLIApp) savingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "savings",
		Short: "Show weekly savings against expenses for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.dashboardUseCase.RunSavings(cmd.Context(), app.args)
		},
	}
	periodFlags(cmd, app.args)
	return cmd
}

func analysisFlags(cmd *cobra.Command, args *types.CLIArgs) {
	cmd.Flags().StringVar(&args.SpendingPct, "spending", "", "Target spending percentage (default 70)")
	cmd.Flags().StringVar(&args.SavingPct, "saving", "", "Target saving percentage (default 30)")
}

func (app *CLIApp) analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compare spending and saving with a target split",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.dashboardUseCase.RunAnalysis(cmd.Context(), app.args)
		},
	}
	analysisFlags(cmd, app.args)
	return cmd
}

func (app *CLIApp) overviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show breakdown, weekly series and analysis for a month and export them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.dashboardUseCase.RunOverview(cmd.Context(), app.args)
		},
	}
	periodFlags(cmd, app.args)
	analysisFlags(cmd, app.args)
	return cmd
}

func (app *CLIApp) chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Ask questions about a month's finances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.dashboardUseCase.RunChat(cmd.Context(), app.args, app.stdin)
		},
	}
	periodFlags(cmd, app.args)
	cmd.Flags().StringVarP(&app.args.Query, "query", "q", "", "Ask a single question instead of starting an interactive session")
	return cmd
}

func (app *CLIApp) setFile(args []string) {
	if len(args) > 0 {
		app.args.File = args[0]
	}
}

// setup resolves the configuration and builds the use case before any subcommand runs.
func (app *CLIApp) setup(cmd *cobra.Command, _ []string) error {
	if !app.quiet {
		displayWelcomeBanner(app.version)
		go version.CheckLatestVersion(app.version)
	}

	cfg, err := app.resolveConfig(cmd)
	if err != nil {
		return err
	}
	app.config = cfg

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := log.New(log.Config{Level: level, Component: log.ComponentCLI, Writer: os.Stderr})
	log.SetDefault(logger)
	logger.Debug("configuration resolved", "backend_url", cfg.BackendURL, "timeout_seconds", cfg.TimeoutSeconds)

	uc, err := app.factory(cfg, logger)
	if err != nil {
		return err
	}
	app.dashboardUseCase = uc
	return nil
}

// resolveConfig merges defaults, the config file, the environment and explicitly set flags, in
// increasing order of precedence.
func (app *CLIApp) resolveConfig(cmd *cobra.Command) (*types.Config, error) {
	cfg := types.DefaultConfig()
	if app.args.ConfigFile != "" {
		loaded, err := app.configRepo.LoadConfigFile(app.args.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := app.configRepo.LoadEnv(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend-url") {
		cfg.BackendURL = app.args.BackendURL
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = app.args.Timeout
	}
	if flags.Changed("debug") {
		cfg.Debug = app.args.Debug
	}
	if flags.Changed("report-name") {
		cfg.ReportName = app.args.ReportName
	}
	if flags.Changed("report-type") {
		cfg.ReportType = app.args.ReportType
	}
	if flags.Changed("dir") {
		cfg.Dir = app.args.Dir
	}
	if flags.Changed("archive-bucket") {
		cfg.Archive.Bucket = app.args.ArchiveBucket
	}
	if flags.Changed("archive-prefix") {
		cfg.Archive.Prefix = app.args.ArchivePrefix
	}
	if flags.Changed("archive-region") {
		cfg.Archive.Region = app.args.ArchiveRegion
	}

	if cfg.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		cfg.Dir = cwd
	} else {
		absDir, err := filepath.Abs(cfg.Dir)
		if err != nil {
			return nil, err
		}
		cfg.Dir = absDir
	}

	cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
