package repositories

import "github.com/vsinha/vaxpipe/pkg/domain/entities"

// RecordRepository provides access to raw vaccination records
type RecordRepository interface {
	GetAllRecords() ([]*entities.VaccinationRecord, error)
	GetRecordsByLocation(location entities.Location) ([]*entities.VaccinationRecord, error)
	LoadRecords(records []*entities.VaccinationRecord) error
	Count() int
	Locations() []entities.Location
}
