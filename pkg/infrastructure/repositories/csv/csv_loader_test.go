package csv

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/vaxpipe/pkg/domain/entities"
)

func TestLoader_LoadRecords(t *testing.T) {
	loader := NewLoader()

	records, report, err := loader.LoadRecords(filepath.Join("testdata", "vaccinations.csv"))
	if err != nil {
		t.Fatalf("Expected load to succeed: %v", err)
	}
	if report.Rows != 6 || report.SkippedRows != 0 {
		t.Errorf("Expected 6 rows and 0 skipped, got %d and %d", report.Rows, report.SkippedRows)
	}
	if len(records) != 6 {
		t.Fatalf("Expected 6 records, got %d", len(records))
	}

	first := records[0]
	if first.Location != "United States" || first.Date != "2021-01-12" || first.Vaccine != "Moderna" {
		t.Errorf("Unexpected first record: %+v", first)
	}
	if !first.Total.Valid || !first.Total.Decimal.Equal(decimal.NewFromInt(3_614_478)) {
		t.Errorf("Expected total 3614478, got %+v", first.Total)
	}

	// Empty count cell stays absent, not zero.
	absent := records[4]
	if absent.Location != "France" || absent.Total.Valid {
		t.Errorf("Expected absent total for France row, got %+v", absent)
	}

	// A concatenated manufacturer label is one category, not two.
	joint := records[5]
	if joint.Vaccine != "Pfizer/BioNTech, Sinovac" {
		t.Errorf("Expected joint label kept verbatim, got %q", joint.Vaccine)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader()

	_, _, err := loader.LoadRecords(filepath.Join("testdata", "does_not_exist.csv"))
	if err == nil {
		t.Fatalf("Expected SourceUnavailable for a missing file")
	}
	if !entities.HasCode(err, entities.CodeSourceUnavailable) {
		t.Errorf("Expected SOURCE_UNAVAILABLE, got %v", err)
	}
}

func TestLoader_NonNumericCount(t *testing.T) {
	loader := NewLoader()

	_, _, err := loader.LoadRecords(filepath.Join("testdata", "malformed.csv"))
	if err == nil {
		t.Fatalf("Expected MalformedRow for a non-numeric count")
	}
	if !entities.HasCode(err, entities.CodeMalformedRow) {
		t.Errorf("Expected MALFORMED_ROW, got %v", err)
	}

	var pipelineErr *entities.PipelineError
	if !errors.As(err, &pipelineErr) {
		t.Fatalf("Expected a PipelineError, got %T", err)
	}
	if pipelineErr.Row != 3 {
		t.Errorf("Expected the offending row 3 identified, got %d", pipelineErr.Row)
	}
}

func TestLoader_WrongColumnCount(t *testing.T) {
	loader := NewLoader()

	_, _, err := loader.LoadRecords(filepath.Join("testdata", "ragged.csv"))
	if err == nil {
		t.Fatalf("Expected MalformedRow for a short row")
	}
	if !entities.HasCode(err, entities.CodeMalformedRow) {
		t.Errorf("Expected MALFORMED_ROW, got %v", err)
	}
}

func TestLoader_HeaderMismatch(t *testing.T) {
	loader := NewLoader()

	_, _, err := loader.LoadRecords(filepath.Join("testdata", "bad_header.csv"))
	if err == nil {
		t.Fatalf("Expected MalformedRow for a wrong header")
	}
	if !entities.HasCode(err, entities.CodeMalformedRow) {
		t.Errorf("Expected MALFORMED_ROW, got %v", err)
	}
}

func TestLoader_LenientSkipsAndCounts(t *testing.T) {
	loader := NewLoaderWithOptions(true, nil)

	records, report, err := loader.LoadRecords(filepath.Join("testdata", "malformed.csv"))
	if err != nil {
		t.Fatalf("Expected lenient load to succeed: %v", err)
	}
	if report.SkippedRows != 1 {
		t.Errorf("Expected 1 skipped row, got %d", report.SkippedRows)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 surviving records, got %d", len(records))
	}
	for _, record := range records {
		if record.Location == "France" {
			t.Errorf("Expected the malformed France row to be skipped")
		}
	}
}
