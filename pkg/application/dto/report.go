package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/vaxpipe/pkg/domain/entities"
)

// Report contains the complete output of a pipeline run: the three derived
// views plus run diagnostics. It is an immutable snapshot; consumers
// (chart renderers, exporters) read it and never write back.
type Report struct {
	RunID       string                  `json:"run_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Worldwide   decimal.Decimal         `json:"worldwide_total_millions"`
	ByCountry   []entities.CountryTotal `json:"by_country"`
	Series      []entities.SeriesPoint  `json:"series"`
	Diagnostics Diagnostics             `json:"diagnostics"`
}

// Diagnostics carries row-level counts surfaced during the run
type Diagnostics struct {
	RowsLoaded    int `json:"rows_loaded"`
	SkippedRows   int `json:"skipped_rows"`
	DuplicateKeys int `json:"duplicate_keys"`
	DroppedAbsent int `json:"dropped_absent"`
}
