package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/vaxpipe/pkg/application/dto"
	"github.com/vsinha/vaxpipe/pkg/domain/repositories"
	domain "github.com/vsinha/vaxpipe/pkg/domain/services"
	"github.com/vsinha/vaxpipe/pkg/infrastructure/events"
)

// ReportService runs the load -> normalize -> aggregate pipeline over a
// record repository and assembles the derived views into a Report. Each run
// gets a fresh run ID and appends a stage trail to the event store.
type ReportService struct {
	normalizer *domain.Normalizer
	aggregator *domain.Aggregator
	logger     *zap.Logger
	store      events.EventStore
}

// NewReportService creates a report service with a sequential aggregator
func NewReportService(logger *zap.Logger, store events.EventStore) *ReportService {
	return NewReportServiceWithWorkers(logger, store, 1)
}

// NewReportServiceWithWorkers creates a report service whose aggregation
// folds are partitioned across the given number of workers
func NewReportServiceWithWorkers(logger *zap.Logger, store events.EventStore, workers int) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = events.NewInMemoryEventStore()
	}
	return &ReportService{
		normalizer: domain.NewNormalizer(logger),
		aggregator: domain.NewAggregatorWithWorkers(workers),
		logger:     logger,
		store:      store,
	}
}

// BuildReport runs the pipeline once, to completion or to first error.
// source names the input for logs and the run trail; skippedRows carries the
// loader's lenient-mode diagnostic through to the report.
func (s *ReportService) BuildReport(ctx context.Context, repo repositories.RecordRepository, source string, skippedRows int) (*dto.Report, error) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))

	s.appendEvent(runID, events.NewRunStartedEvent(runID, source))

	records, err := repo.GetAllRecords()
	if err != nil {
		s.appendEvent(runID, events.NewRunFailedEvent(runID, err.Error()))
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	logger.Info("records loaded",
		zap.String("source", source),
		zap.Int("rows", len(records)),
		zap.Int("skipped_rows", skippedRows))
	s.appendEvent(runID, events.NewRecordsLoadedEvent(runID, len(records), skippedRows))

	if err := ctx.Err(); err != nil {
		s.appendEvent(runID, events.NewRunFailedEvent(runID, err.Error()))
		return nil, err
	}

	normalized, normReport, err := s.normalizer.Normalize(records)
	if err != nil {
		s.appendEvent(runID, events.NewRunFailedEvent(runID, err.Error()))
		return nil, fmt.Errorf("normalization failed: %w", err)
	}
	if normReport.DuplicateKeys > 0 {
		logger.Warn("duplicate composite keys found",
			zap.Int("duplicates", normReport.DuplicateKeys),
			zap.Strings("samples", normReport.DuplicateSamples))
	}
	s.appendEvent(runID, events.NewRecordsNormalizedEvent(runID, normReport.Records, normReport.DuplicateKeys))

	if err := ctx.Err(); err != nil {
		s.appendEvent(runID, events.NewRunFailedEvent(runID, err.Error()))
		return nil, err
	}

	droppedAbsent := 0
	for _, r := range normalized {
		if !r.Total.Valid {
			droppedAbsent++
		}
	}

	worldwide := s.aggregator.Worldwide(normalized)
	byCountry := s.aggregator.ByCountry(normalized)
	series := s.aggregator.ByDateManufacturer(normalized)

	logger.Info("aggregates computed",
		zap.String("worldwide_millions", worldwide.String()),
		zap.Int("countries", len(byCountry)),
		zap.Int("series_points", len(series)),
		zap.Int("dropped_absent", droppedAbsent))
	s.appendEvent(runID, events.NewAggregatesComputedEvent(runID, worldwide, len(byCountry), len(series)))
	s.appendEvent(runID, events.NewRunCompletedEvent(runID))

	return &dto.Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Worldwide:   worldwide,
		ByCountry:   byCountry,
		Series:      series,
		Diagnostics: dto.Diagnostics{
			RowsLoaded:    len(records),
			SkippedRows:   skippedRows,
			DuplicateKeys: normReport.DuplicateKeys,
			DroppedAbsent: droppedAbsent,
		},
	}, nil
}

// appendEvent records a stage event; the trail is diagnostic only and must
// never fail the run
func (s *ReportService) appendEvent(runID string, event events.Event) {
	if err := s.store.AppendEvent(runID, event); err != nil {
		s.logger.Warn("failed to append run event", zap.Error(err))
	}
}
