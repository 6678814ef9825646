package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/vsinha/vaxpipe/pkg/interfaces/cli/commands"
)

func main() {
	defaults := commands.LoadDefaults()

	// Command line flags, seeded from environment defaults
	var (
		inputFile = flag.String("input", defaults.InputFile, "Path to vaccinations CSV file")
		outputDir = flag.String("output", defaults.OutputDir, "Output directory for results (optional)")
		format    = flag.String("format", defaults.Format, "Output format: text, json, csv")
		lenient   = flag.Bool("lenient", defaults.Lenient, "Skip and count malformed rows instead of failing")
		workers   = flag.Int("workers", defaults.Workers, "Partitioned fold workers, 0 or 1 = sequential")
		verbose   = flag.Bool("verbose", defaults.Verbose, "Enable verbose output")
		help      = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		InputFile: *inputFile,
		OutputDir: *outputDir,
		Format:    *format,
		Lenient:   *lenient,
		Workers:   *workers,
		Verbose:   *verbose,
		Help:      *help,
	}

	cmd := commands.NewReportCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
