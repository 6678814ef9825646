package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/vaxpipe/pkg/domain/entities"
)

var expectedHeader = []string{"location", "date", "vaccine", "total_vaccinations"}

// LoadReport carries row-level diagnostics from a load
type LoadReport struct {
	Rows        int
	SkippedRows int
}

// Loader handles loading vaccination records from CSV files. In strict mode
// (the default) any schema violation aborts the load; in lenient mode
// malformed rows are skipped and counted instead.
type Loader struct {
	lenient bool
	logger  *zap.Logger
}

// NewLoader creates a strict CSV loader
func NewLoader() *Loader {
	return NewLoaderWithOptions(false, nil)
}

// NewLoaderWithOptions creates a CSV loader with an explicit malformed-row
// policy and logger
func NewLoaderWithOptions(lenient bool, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{lenient: lenient, logger: logger}
}

// LoadRecords loads vaccination records from a CSV file. An empty count cell
// is an absent value, not an error. Dates are kept as raw text here; the
// normalizer owns date parsing.
func (l *Loader) LoadRecords(filename string) ([]*entities.VaccinationRecord, *LoadReport, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, entities.WrapError(entities.CodeSourceUnavailable,
			fmt.Sprintf("failed to open vaccinations file %s", filename), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // column count checked per row for better errors
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, entities.WrapError(entities.CodeSourceUnavailable,
			fmt.Sprintf("failed to read vaccinations CSV %s", filename), err)
	}

	if len(rows) == 0 {
		return nil, nil, entities.NewError(entities.CodeMalformedRow,
			"vaccinations CSV must have a header row")
	}

	if !validateHeader(rows[0], expectedHeader) {
		return nil, nil, entities.NewError(entities.CodeMalformedRow,
			fmt.Sprintf("vaccinations CSV header mismatch. Expected: %v, Got: %v",
				expectedHeader, rows[0]))
	}

	report := &LoadReport{}
	records := make([]*entities.VaccinationRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, counting the header
		record, err := parseRecord(row, rowNum)
		if err != nil {
			if l.lenient {
				report.SkippedRows++
				l.logger.Warn("skipping malformed row",
					zap.Int("row", rowNum),
					zap.String("raw", strings.Join(row, ",")),
					zap.Error(err))
				continue
			}
			return nil, nil, err
		}
		records = append(records, record)
	}

	report.Rows = len(records)
	return records, report, nil
}

// parseRecord parses a single CSV row into a VaccinationRecord
func parseRecord(row []string, rowNum int) (*entities.VaccinationRecord, error) {
	raw := strings.Join(row, ",")

	if len(row) != len(expectedHeader) {
		return nil, entities.RowError(entities.CodeMalformedRow,
			fmt.Sprintf("expected %d columns, got %d", len(expectedHeader), len(row)),
			rowNum, raw)
	}

	total := decimal.NullDecimal{}
	if cell := strings.TrimSpace(row[3]); cell != "" {
		value, err := decimal.NewFromString(cell)
		if err != nil {
			return nil, entities.RowError(entities.CodeMalformedRow,
				fmt.Sprintf("non-numeric total_vaccinations %q", cell), rowNum, raw)
		}
		total = decimal.NullDecimal{Decimal: value, Valid: true}
	}

	record, err := entities.NewVaccinationRecord(
		entities.Location(strings.TrimSpace(row[0])),
		strings.TrimSpace(row[1]),
		entities.Vaccine(strings.TrimSpace(row[2])),
		total,
	)
	if err != nil {
		return nil, entities.RowError(entities.CodeMalformedRow, err.Error(), rowNum, raw)
	}

	return record, nil
}

// validateHeader checks if the CSV header matches the expected format
func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return false
		}
	}
	return true
}
