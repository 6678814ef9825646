package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Location represents a country or region name
type Location string

// Vaccine represents a manufacturer label; joint administrations arrive as a
// single concatenated label and are kept as one category, not split
type Vaccine string

// DateLayout is the only accepted date format for raw records
const DateLayout = "2006-01-02"

// VaccinationRecord represents one raw input row. Date is kept as text until
// the normalizer parses it; Total is null when the source cell was empty.
type VaccinationRecord struct {
	Location Location
	Date     string
	Vaccine  Vaccine
	Total    decimal.NullDecimal
}

// NewVaccinationRecord creates a validated VaccinationRecord
func NewVaccinationRecord(location Location, date string, vaccine Vaccine, total decimal.NullDecimal) (*VaccinationRecord, error) {
	if string(location) == "" {
		return nil, fmt.Errorf("location cannot be empty")
	}
	if date == "" {
		return nil, fmt.Errorf("date cannot be empty")
	}
	if string(vaccine) == "" {
		return nil, fmt.Errorf("vaccine cannot be empty")
	}
	if total.Valid && total.Decimal.IsNegative() {
		return nil, fmt.Errorf("total vaccinations cannot be negative, got %s", total.Decimal)
	}

	return &VaccinationRecord{
		Location: location,
		Date:     date,
		Vaccine:  vaccine,
		Total:    total,
	}, nil
}

// NormalizedRecord is a VaccinationRecord with the date parsed and the count
// rescaled to millions. A null Total still means "no measurement", never zero.
type NormalizedRecord struct {
	Location Location
	Date     time.Time
	Vaccine  Vaccine
	Total    decimal.NullDecimal
}

// RecordKey is the composite identity of a record
type RecordKey struct {
	Location Location
	Date     time.Time
	Vaccine  Vaccine
}

// Key returns the composite key for duplicate detection
func (r NormalizedRecord) Key() RecordKey {
	return RecordKey{Location: r.Location, Date: r.Date, Vaccine: r.Vaccine}
}

// String formats the key for diagnostics output
func (k RecordKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Location, k.Date.Format(DateLayout), k.Vaccine)
}
