package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cga-events/internal/config"
	"github.com/pfrederiksen/cga-events/internal/logger"
	"github.com/pfrederiksen/cga-events/internal/metrics"
	"github.com/pfrederiksen/cga-events/internal/pipeline"
	"github.com/pfrederiksen/cga-events/internal/scraper"
	"github.com/pfrederiksen/cga-events/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagOutput  string
	flagDays    int
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cga-events",
		Short: "Build an iCalendar feed of Connecticut General Assembly events",
		Long: `A CLI tool that scrapes the Connecticut General Assembly events listing
for the next two weeks and writes the results as an iCalendar (.ics) feed.
An empty run leaves any previously written feed untouched.`,
		Args:          cobra.NoArgs,
		RunE:          runScrape,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Optional YAML config file")
	cmd.Flags().StringVar(&flagOutput, "output", config.DefaultOutputPath, "Path of the calendar file to write")
	cmd.Flags().IntVar(&flagDays, "days", config.DefaultDays, "Number of days to fetch, starting today")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Summary format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	// Explicit flags win over the config file.
	if cmd.Flags().Changed("output") {
		cfg.OutputPath = flagOutput
	}
	if cmd.Flags().Changed("days") {
		cfg.Days = flagDays
	}
	if flagVerbose {
		cfg.LogLevel = string(logger.LevelDebug)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(log)

	store, err := storage.New(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	session, err := scraper.NewSession(scraper.Options{
		LandingURL:     cfg.LandingURL,
		SearchURL:      cfg.SearchURL,
		UserAgent:      cfg.UserAgent,
		LandingTimeout: cfg.LandingTimeout,
		SearchTimeout:  cfg.SearchTimeout,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("initializing scraper: %w", err)
	}

	m := metrics.New()
	p := &pipeline.Pipeline{
		Fetcher: session,
		Store:   store,
		Logger:  log,
		Metrics: m,
		Days:    cfg.Days,
		Delay:   cfg.Delay,
		TZID:    cfg.Timezone,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, runErr := p.Run(ctx)

	if cfg.MetricsTextfile != "" {
		if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warn("could not write metrics", logger.Fields{"path": cfg.MetricsTextfile, "error": err.Error()})
		}
	}

	if runErr != nil && !errors.Is(runErr, pipeline.ErrNoEvents) {
		return runErr
	}

	result := NewOutputResult(report, store.Path(), time.Now().UTC())
	if err := WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return runErr
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	// The summary already reported an empty run.
	if !errors.Is(err, pipeline.ErrNoEvents) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(ExitError)
}
