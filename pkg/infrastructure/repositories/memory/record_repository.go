package memory

import (
	"fmt"

	"github.com/vsinha/vaxpipe/pkg/domain/entities"
	"github.com/vsinha/vaxpipe/pkg/domain/repositories"
)

// RecordRepository provides in-memory record storage preserving insertion
// order, which downstream aggregation tie-breaking depends on
type RecordRepository struct {
	records    []entities.VaccinationRecord
	byLocation map[entities.Location][]int
	locations  []entities.Location
}

// NewRecordRepository creates a new in-memory record repository
func NewRecordRepository(expectedRecords int) *RecordRepository {
	return &RecordRepository{
		records:    make([]entities.VaccinationRecord, 0, expectedRecords),
		byLocation: make(map[entities.Location][]int),
	}
}

// Verify interface compliance
var _ repositories.RecordRepository = (*RecordRepository)(nil)

// LoadRecords loads records into the repository
func (r *RecordRepository) LoadRecords(records []*entities.VaccinationRecord) error {
	for i, record := range records {
		if record == nil {
			return fmt.Errorf("record %d is nil", i)
		}
		r.AddRecord(*record)
	}
	return nil
}

// AddRecord adds a record to the repository
func (r *RecordRepository) AddRecord(record entities.VaccinationRecord) {
	if _, seen := r.byLocation[record.Location]; !seen {
		r.locations = append(r.locations, record.Location)
	}
	r.byLocation[record.Location] = append(r.byLocation[record.Location], len(r.records))
	r.records = append(r.records, record)
}

// GetAllRecords returns all records in insertion order
func (r *RecordRepository) GetAllRecords() ([]*entities.VaccinationRecord, error) {
	records := make([]*entities.VaccinationRecord, 0, len(r.records))
	for i := range r.records {
		records = append(records, &r.records[i])
	}
	return records, nil
}

// GetRecordsByLocation returns records for a single location in insertion order
func (r *RecordRepository) GetRecordsByLocation(location entities.Location) ([]*entities.VaccinationRecord, error) {
	indices, exists := r.byLocation[location]
	if !exists {
		return nil, fmt.Errorf("no records for location: %s", location)
	}
	records := make([]*entities.VaccinationRecord, 0, len(indices))
	for _, i := range indices {
		records = append(records, &r.records[i])
	}
	return records, nil
}

// Count returns the number of records loaded
func (r *RecordRepository) Count() int {
	return len(r.records)
}

// Locations returns distinct locations in first-seen order
func (r *RecordRepository) Locations() []entities.Location {
	locations := make([]entities.Location, len(r.locations))
	copy(locations, r.locations)
	return locations
}
