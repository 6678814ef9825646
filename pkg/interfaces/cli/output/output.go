package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vsinha/vaxpipe/pkg/application/dto"
	"github.com/vsinha/vaxpipe/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format       string
	OutputDir    string
	Verbose      bool
	PipelineTime time.Duration
	InputFile    string
}

// Generate creates output in the specified format
func Generate(report *dto.Report, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(report, config)
	case "json":
		return generateJSONOutput(report, config)
	case "csv":
		return generateCSVOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report *dto.Report, config Config) error {
	p := message.NewPrinter(language.English)

	fmt.Printf("Vaccination Report Summary\n")
	fmt.Printf("==========================\n\n")

	fmt.Printf("Run ID: %s\n", report.RunID)
	fmt.Printf("Generated: %s\n", report.GeneratedAt.Format(time.RFC3339))
	if config.InputFile != "" {
		fmt.Printf("Input: %s\n", config.InputFile)
	}
	if config.PipelineTime > 0 {
		fmt.Printf("Pipeline Time: %v\n", config.PipelineTime)
	}
	fmt.Println()

	fmt.Printf("Worldwide Total: %s million doses\n\n", report.Worldwide)

	if len(report.ByCountry) > 0 {
		fmt.Printf("Totals by Country (descending):\n")
		fmt.Printf("%-30s %15s\n", "Location", "Total (M)")
		fmt.Printf("%-30s %15s\n", "------------------------------", "---------------")
		for _, entry := range report.ByCountry {
			fmt.Printf("%-30s %15s\n", entry.Location, entry.Total)
		}
		fmt.Println()
	}

	if len(report.Series) > 0 {
		fmt.Printf("Daily Totals by Manufacturer:\n")
		fmt.Printf("%-12s %-40s %15s\n", "Date", "Vaccine", "Total (M)")
		fmt.Printf("%-12s %-40s %15s\n",
			"------------", "----------------------------------------", "---------------")
		for _, point := range report.Series {
			fmt.Printf("%-12s %-40s %15s\n",
				point.Date.Format(entities.DateLayout), point.Vaccine, point.Total)
		}
		fmt.Println()
	}

	if config.Verbose {
		fmt.Printf("Diagnostics:\n")
		p.Printf("  Rows Loaded: %d\n", report.Diagnostics.RowsLoaded)
		p.Printf("  Skipped Rows: %d\n", report.Diagnostics.SkippedRows)
		p.Printf("  Duplicate Keys: %d\n", report.Diagnostics.DuplicateKeys)
		p.Printf("  Absent Counts (excluded from series): %d\n", report.Diagnostics.DroppedAbsent)
		fmt.Println()
	}

	return nil
}

// generateJSONOutput writes the full report as JSON, to stdout or OutputDir
func generateJSONOutput(report *dto.Report, config Config) error {
	data, err := sonic.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(config.OutputDir, "report.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if config.Verbose {
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}

// generateCSVOutput writes the two derived tables as CSV files
func generateCSVOutput(report *dto.Report, config Config) error {
	dir := config.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	countryPath := filepath.Join(dir, "by_country.csv")
	countryRows := [][]string{{"location", "total_millions"}}
	for _, entry := range report.ByCountry {
		countryRows = append(countryRows, []string{string(entry.Location), entry.Total.String()})
	}
	if err := writeCSV(countryPath, countryRows); err != nil {
		return err
	}

	seriesPath := filepath.Join(dir, "series.csv")
	seriesRows := [][]string{{"date", "vaccine", "total_millions"}}
	for _, point := range report.Series {
		seriesRows = append(seriesRows, []string{
			point.Date.Format(entities.DateLayout),
			string(point.Vaccine),
			point.Total.String(),
		})
	}
	if err := writeCSV(seriesPath, seriesRows); err != nil {
		return err
	}

	if config.Verbose {
		fmt.Printf("Wrote %s\n", countryPath)
		fmt.Printf("Wrote %s\n", seriesPath)
	}
	fmt.Printf("Worldwide Total: %s million doses\n", report.Worldwide)
	return nil
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}
