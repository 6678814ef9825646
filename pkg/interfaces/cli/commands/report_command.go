package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vsinha/vaxpipe/pkg/application/services"
	"github.com/vsinha/vaxpipe/pkg/infrastructure/events"
	"github.com/vsinha/vaxpipe/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/vaxpipe/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/vaxpipe/pkg/interfaces/cli/output"
)

// Config holds configuration for the report command
type Config struct {
	InputFile string `validate:"required"`
	OutputDir string
	Format    string `validate:"oneof=text json csv"`
	Lenient   bool
	Workers   int `validate:"gte=0"`
	Verbose   bool
	Help      bool
}

// LoadDefaults returns a Config populated from VAXPIPE_* environment
// variables with built-in fallbacks; flags override these afterwards
func LoadDefaults() Config {
	v := viper.New()
	v.SetEnvPrefix("vaxpipe")
	v.AutomaticEnv()
	v.SetDefault("format", "text")
	v.SetDefault("workers", 1)

	return Config{
		InputFile: v.GetString("input"),
		OutputDir: v.GetString("output"),
		Format:    v.GetString("format"),
		Lenient:   v.GetBool("lenient"),
		Workers:   v.GetInt("workers"),
		Verbose:   v.GetBool("verbose"),
	}
}

// ReportCommand handles the main pipeline execution logic
type ReportCommand struct {
	config Config
}

// NewReportCommand creates a new report command with the given configuration
func NewReportCommand(config Config) *ReportCommand {
	return &ReportCommand{
		config: config,
	}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := validator.New().Struct(c.config); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	logger, err := c.buildLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	if c.config.Verbose {
		fmt.Printf("Loading records from %s\n", c.config.InputFile)
	}

	loader := csv.NewLoaderWithOptions(c.config.Lenient, logger)
	records, loadReport, err := loader.LoadRecords(c.config.InputFile)
	if err != nil {
		return fmt.Errorf("error loading records: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Loaded %d records (%d skipped)\n", loadReport.Rows, loadReport.SkippedRows)
	}

	repo := memory.NewRecordRepository(len(records))
	if err := repo.LoadRecords(records); err != nil {
		return fmt.Errorf("failed to load records into repository: %w", err)
	}

	service := services.NewReportServiceWithWorkers(logger, events.NewInMemoryEventStore(), c.config.Workers)

	startTime := time.Now()
	report, err := service.BuildReport(ctx, repo, c.config.InputFile, loadReport.SkippedRows)
	pipelineTime := time.Since(startTime)

	if err != nil {
		return fmt.Errorf("error building report: %w", err)
	}

	outputConfig := output.Config{
		Format:       c.config.Format,
		OutputDir:    c.config.OutputDir,
		Verbose:      c.config.Verbose,
		PipelineTime: pipelineTime,
		InputFile:    c.config.InputFile,
	}

	if err := output.Generate(report, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// buildLogger returns a console logger; non-verbose runs still surface
// warnings (duplicates, skipped rows) as the pipeline requires
func (c *ReportCommand) buildLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !c.config.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}

// showHelp displays the help message
func (c *ReportCommand) showHelp() {
	fmt.Printf(`vaxpipe - COVID-19 vaccination aggregation pipeline

USAGE:
    vaxpipe -input <file> [options]

OPTIONS:
    -input <file>       Path to vaccinations CSV file (required)
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv (default: text)
    -lenient            Skip and count malformed rows instead of failing
    -workers <n>        Partitioned fold workers, 0 or 1 = sequential
    -verbose            Enable verbose output
    -help               Show this help message

Defaults may also come from VAXPIPE_* environment variables
(VAXPIPE_INPUT, VAXPIPE_FORMAT, ...); flags take precedence.

CSV FILE FORMAT:

vaccinations.csv:
    location,date,vaccine,total_vaccinations
    United States,2021-01-12,Moderna,3614478
    United States,2021-01-12,Pfizer/BioNTech,5488697
    France,2021-01-12,Moderna,

An empty total_vaccinations cell records "no measurement"; it counts as
zero in the worldwide and by-country totals but is excluded from the
per-date manufacturer series.

EXAMPLES:
    # Print the report as text
    vaxpipe -input data/vaccinations.csv -verbose

    # Write JSON to a results directory
    vaxpipe -input data/vaccinations.csv -format json -output results/

    # Export the derived tables as CSV
    vaxpipe -input data/vaccinations.csv -format csv -output results/

    # Tolerate malformed rows, report how many were skipped
    vaxpipe -input data/vaccinations.csv -lenient -verbose
`)
}
