package events

import (
	"github.com/shopspring/decimal"
)

const (
	RunStartedEvent   = "run.started"
	RunCompletedEvent = "run.completed"
	RunFailedEvent    = "run.failed"

	RecordsLoadedEvent      = "records.loaded"
	RecordsNormalizedEvent  = "records.normalized"
	AggregatesComputedEvent = "aggregates.computed"
)

type RunStarted struct {
	RunID string `json:"run_id"`
	Input string `json:"input"`
}

type RunCompleted struct {
	RunID string `json:"run_id"`
}

type RunFailed struct {
	RunID  string `json:"run_id"`
	Reason string `json:"reason"`
}

type RecordsLoaded struct {
	Rows        int `json:"rows"`
	SkippedRows int `json:"skipped_rows"`
}

type RecordsNormalized struct {
	Records       int `json:"records"`
	DuplicateKeys int `json:"duplicate_keys"`
}

type AggregatesComputed struct {
	Worldwide    decimal.Decimal `json:"worldwide_total_millions"`
	Countries    int             `json:"countries"`
	SeriesPoints int             `json:"series_points"`
}

func NewRunStartedEvent(runID, input string) Event {
	return NewEvent(RunStartedEvent, runID, RunStarted{RunID: runID, Input: input})
}

func NewRunCompletedEvent(runID string) Event {
	return NewEvent(RunCompletedEvent, runID, RunCompleted{RunID: runID})
}

func NewRunFailedEvent(runID, reason string) Event {
	return NewEvent(RunFailedEvent, runID, RunFailed{RunID: runID, Reason: reason})
}

func NewRecordsLoadedEvent(runID string, rows, skipped int) Event {
	return NewEvent(RecordsLoadedEvent, runID, RecordsLoaded{Rows: rows, SkippedRows: skipped})
}

func NewRecordsNormalizedEvent(runID string, records, duplicates int) Event {
	return NewEvent(RecordsNormalizedEvent, runID, RecordsNormalized{
		Records:       records,
		DuplicateKeys: duplicates,
	})
}

func NewAggregatesComputedEvent(runID string, worldwide decimal.Decimal, countries, seriesPoints int) Event {
	return NewEvent(AggregatesComputedEvent, runID, AggregatesComputed{
		Worldwide:    worldwide,
		Countries:    countries,
		SeriesPoints: seriesPoints,
	})
}
