package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/brokerscore/internal/adapters/source"
	service "github.com/okian/brokerscore/internal/app"
	"github.com/okian/brokerscore/internal/config"
	"github.com/okian/brokerscore/internal/domain/benchmark"
	"github.com/okian/brokerscore/internal/domain/fields"
	"github.com/okian/brokerscore/internal/domain/normalize"
	"github.com/okian/brokerscore/internal/domain/scoring"
	"github.com/okian/brokerscore/pkg/logger"
)

// cli carries state shared by the subcommands.
type cli struct {
	configPath string
	logLevel   string
	table      string
	sheet      string
	benchPath  string

	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "brokerscore",
		Short:        "Score and rank real-estate brokerage mystery-shopper evaluations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "YAML config file (default $"+config.EnvConfig+")")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&c.table, "table", "", "latency rule table: A or B")
	flags.StringVar(&c.sheet, "sheet", "", "worksheet name (default: first sheet)")
	flags.StringVar(&c.benchPath, "benchmark", "", "YAML benchmark snapshot")

	root.AddCommand(
		newServeCmd(c),
		newScoreCmd(c),
		newRankCmd(c),
		newBenchmarkCmd(c),
	)
	return root
}

// setup loads configuration, applies flag overrides and initializes logging
// on the command's stderr.
func (c *cli) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFrom(ctx, c.configPath)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("table") {
		cfg.TierTable = c.table
	}
	if flags.Changed("sheet") {
		cfg.SheetName = c.sheet
	}
	if flags.Changed("benchmark") {
		cfg.BenchmarkPath = c.benchPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, _ := logger.ParseFormat(cfg.LogFormat)
	if err := logger.InitWriter(cmd.ErrOrStderr(), logger.WithFormat(format)); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	c.cfg = cfg
	c.log = logger.Get()
	return nil
}

// workbook returns the xlsx source for path with the configured sheet.
func (c *cli) workbook(path string) source.Source {
	opts := []source.XLSXOption{
		source.WithSheetIndex(c.cfg.SheetIndex),
		source.WithLogger(c.log.Named("source")),
	}
	if c.cfg.SheetName != "" {
		opts = append(opts, source.WithSheetName(c.cfg.SheetName))
	}
	return source.NewXLSX(path, opts...)
}

func (c *cli) normalizer() *normalize.Normalizer {
	resolver := fields.NewResolver(
		fields.WithMinAliasLength(c.cfg.MinAliasLength),
		fields.WithAccentFolding(c.cfg.FoldAccents),
	)
	return normalize.New(
		normalize.WithResolver(resolver),
		normalize.WithClassifier(scoring.NewClassifier(scoring.WithTable(c.cfg.Table()))),
		normalize.WithLogger(c.log.Named("normalize")),
		normalize.WithWorkers(c.cfg.NormalizeWorkers),
	)
}

func (c *cli) benchmark(ctx context.Context) (benchmark.Provider, error) {
	if c.cfg.BenchmarkPath == "" {
		return benchmark.Static(benchmark.Default()), nil
	}
	return benchmark.LoadFile(ctx, c.cfg.BenchmarkPath)
}

// service wires a Service reading from path.
func (c *cli) service(ctx context.Context, path string) (*service.Service, error) {
	bench, err := c.benchmark(ctx)
	if err != nil {
		return nil, err
	}
	return service.New(
		service.WithSource(c.workbook(path)),
		service.WithNormalizer(c.normalizer()),
		service.WithBenchmark(bench),
		service.WithPopulationBenchmark(c.cfg.PopulationBenchmark()),
		service.WithLogger(c.log.Named("service")),
		service.WithReloadInterval(c.cfg.ReloadInterval),
	), nil
}
