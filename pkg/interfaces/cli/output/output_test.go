package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"

	"github.com/vsinha/vaxpipe/pkg/application/dto"
	"github.com/vsinha/vaxpipe/pkg/domain/entities"
)

func sampleReport() *dto.Report {
	date := time.Date(2021, 1, 12, 0, 0, 0, 0, time.UTC)
	return &dto.Report{
		RunID:       "test-run",
		GeneratedAt: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
		Worldwide:   decimal.RequireFromString("3.5"),
		ByCountry: []entities.CountryTotal{
			{Location: "US", Total: decimal.RequireFromString("3.2")},
			{Location: "FR", Total: decimal.RequireFromString("0.3")},
		},
		Series: []entities.SeriesPoint{
			{Date: date, Vaccine: "Pfizer", Total: decimal.RequireFromString("3.2")},
			{Date: date, Vaccine: "Moderna", Total: decimal.RequireFromString("0.3")},
		},
		Diagnostics: dto.Diagnostics{RowsLoaded: 2},
	}
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	err := Generate(sampleReport(), Config{Format: "yaml"})
	if err == nil {
		t.Fatalf("Expected an error for an unsupported format")
	}
}

func TestGenerate_CSVWritesDerivedTables(t *testing.T) {
	dir := t.TempDir()
	err := Generate(sampleReport(), Config{Format: "csv", OutputDir: dir})
	if err != nil {
		t.Fatalf("Expected CSV generation to succeed: %v", err)
	}

	file, err := os.Open(filepath.Join(dir, "by_country.csv"))
	if err != nil {
		t.Fatalf("Expected by_country.csv: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read by_country.csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "US" || rows[1][1] != "3.2" {
		t.Errorf("Expected US,3.2 first, got %v", rows[1])
	}

	if _, err := os.Stat(filepath.Join(dir, "series.csv")); err != nil {
		t.Errorf("Expected series.csv: %v", err)
	}
}

func TestGenerate_JSONRoundTrips(t *testing.T) {
	dir := t.TempDir()
	err := Generate(sampleReport(), Config{Format: "json", OutputDir: dir})
	if err != nil {
		t.Fatalf("Expected JSON generation to succeed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.json"))
	if err != nil {
		t.Fatalf("Expected report.json: %v", err)
	}

	var decoded dto.Report
	if err := sonic.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to decode report.json: %v", err)
	}
	if decoded.RunID != "test-run" {
		t.Errorf("Expected run ID test-run, got %s", decoded.RunID)
	}
	if !decoded.Worldwide.Equal(decimal.RequireFromString("3.5")) {
		t.Errorf("Expected worldwide 3.5, got %s", decoded.Worldwide)
	}
	if len(decoded.ByCountry) != 2 || len(decoded.Series) != 2 {
		t.Errorf("Expected tables to survive the round trip")
	}
}
