package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func count(n int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(n), Valid: true}
}

func TestVaccinationRecord_Validation(t *testing.T) {
	validRecord, err := NewVaccinationRecord("United States", "2021-01-12", "Moderna", count(1000))
	if err != nil {
		t.Fatalf("Expected valid record creation to succeed: %v", err)
	}
	if validRecord.Location != "United States" {
		t.Errorf("Expected location United States, got %s", validRecord.Location)
	}
	if !validRecord.Total.Valid {
		t.Errorf("Expected total to be present")
	}

	// Test validation failures
	testCases := []struct {
		name        string
		location    Location
		date        string
		vaccine     Vaccine
		total       decimal.NullDecimal
		expectError string
	}{
		{"empty location", "", "2021-01-12", "Moderna", count(1), "location cannot be empty"},
		{"empty date", "US", "", "Moderna", count(1), "date cannot be empty"},
		{"empty vaccine", "US", "2021-01-12", "", count(1), "vaccine cannot be empty"},
		{"negative count", "US", "2021-01-12", "Moderna", count(-5), "total vaccinations cannot be negative, got -5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewVaccinationRecord(tc.location, tc.date, tc.vaccine, tc.total)
			if err == nil {
				t.Fatalf("Expected error %q, got nil", tc.expectError)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}

func TestVaccinationRecord_AbsentCount(t *testing.T) {
	record, err := NewVaccinationRecord("France", "2021-01-13", "Moderna", decimal.NullDecimal{})
	if err != nil {
		t.Fatalf("Expected absent count to be accepted: %v", err)
	}
	if record.Total.Valid {
		t.Errorf("Expected total to stay absent")
	}
}

func TestRecordKey_String(t *testing.T) {
	date := time.Date(2021, 1, 12, 0, 0, 0, 0, time.UTC)
	record := NormalizedRecord{
		Location: "Chile",
		Date:     date,
		Vaccine:  "Sinovac",
	}

	key := record.Key()
	if key.Location != "Chile" || key.Vaccine != "Sinovac" || !key.Date.Equal(date) {
		t.Errorf("Unexpected key: %+v", key)
	}
	if got := key.String(); got != "Chile/2021-01-12/Sinovac" {
		t.Errorf("Expected Chile/2021-01-12/Sinovac, got %s", got)
	}
}
