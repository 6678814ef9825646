package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/vaxpipe/pkg/domain/entities"
)

// maxDuplicateSamples caps how many offending keys the report keeps
const maxDuplicateSamples = 10

var millionDivisor = decimal.NewFromInt(1_000_000)

// NormalizationReport carries diagnostics from a normalization pass.
// Duplicates are reported, never merged; merging would silently double-count.
type NormalizationReport struct {
	Records          int
	DuplicateKeys    int
	DuplicateSamples []string
}

// Normalizer converts raw vaccination records into typed, unit-consistent ones
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a normalizer logging through the given logger
func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger}
}

// Normalize parses dates, rescales counts to millions, and counts duplicate
// composite keys. Records with an absent count are kept as absent so each
// aggregation can decide its own missing-value policy. The returned slice is
// a new collection; the input is not mutated.
func (n *Normalizer) Normalize(records []*entities.VaccinationRecord) ([]entities.NormalizedRecord, *NormalizationReport, error) {
	normalized := make([]entities.NormalizedRecord, 0, len(records))
	seen := make(map[entities.RecordKey]struct{}, len(records))
	report := &NormalizationReport{}

	for i, record := range records {
		if record == nil {
			return nil, nil, entities.RowError(entities.CodeInvalidRecord,
				"nil record", i+1, "")
		}
		if string(record.Location) == "" || string(record.Vaccine) == "" {
			return nil, nil, entities.RowError(entities.CodeInvalidRecord,
				"location and vaccine are required", i+1,
				fmt.Sprintf("%s,%s,%s", record.Location, record.Date, record.Vaccine))
		}
		if record.Total.Valid && record.Total.Decimal.IsNegative() {
			return nil, nil, entities.RowError(entities.CodeInvalidRecord,
				fmt.Sprintf("negative count %s", record.Total.Decimal), i+1,
				record.Total.Decimal.String())
		}

		date, err := time.Parse(entities.DateLayout, record.Date)
		if err != nil {
			return nil, nil, entities.RowError(entities.CodeInvalidDate,
				fmt.Sprintf("date %q does not match %s", record.Date, entities.DateLayout),
				i+1, record.Date)
		}

		total := record.Total
		if total.Valid {
			total.Decimal = total.Decimal.Div(millionDivisor)
		}

		norm := entities.NormalizedRecord{
			Location: record.Location,
			Date:     date,
			Vaccine:  record.Vaccine,
			Total:    total,
		}

		key := norm.Key()
		if _, dup := seen[key]; dup {
			report.DuplicateKeys++
			if len(report.DuplicateSamples) < maxDuplicateSamples {
				report.DuplicateSamples = append(report.DuplicateSamples, key.String())
			}
			n.logger.Warn("duplicate composite key",
				zap.String("key", key.String()),
				zap.Int("record", i+1))
		} else {
			seen[key] = struct{}{}
		}

		normalized = append(normalized, norm)
	}

	report.Records = len(normalized)
	return normalized, report, nil
}
