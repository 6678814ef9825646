package memory

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/vaxpipe/pkg/domain/entities"
)

func count(n int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(n), Valid: true}
}

func buildRepository(t *testing.T) *RecordRepository {
	t.Helper()
	repo := NewRecordRepository(4)
	records := []*entities.VaccinationRecord{
		{Location: "US", Date: "2021-01-01", Vaccine: "Pfizer", Total: count(100)},
		{Location: "FR", Date: "2021-01-01", Vaccine: "Moderna", Total: count(200)},
		{Location: "US", Date: "2021-01-02", Vaccine: "Pfizer", Total: count(300)},
	}
	if err := repo.LoadRecords(records); err != nil {
		t.Fatalf("Failed to load records: %v", err)
	}
	return repo
}

func TestRecordRepository_PreservesInsertionOrder(t *testing.T) {
	repo := buildRepository(t)

	records, err := repo.GetAllRecords()
	if err != nil {
		t.Fatalf("Expected GetAllRecords to succeed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	expected := []entities.Location{"US", "FR", "US"}
	for i, location := range expected {
		if records[i].Location != location {
			t.Errorf("Position %d: expected %s, got %s", i, location, records[i].Location)
		}
	}
}

func TestRecordRepository_GetRecordsByLocation(t *testing.T) {
	repo := buildRepository(t)

	records, err := repo.GetRecordsByLocation("US")
	if err != nil {
		t.Fatalf("Expected US records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 US records, got %d", len(records))
	}
	if records[0].Date != "2021-01-01" || records[1].Date != "2021-01-02" {
		t.Errorf("Expected US records in insertion order")
	}

	if _, err := repo.GetRecordsByLocation("DE"); err == nil {
		t.Errorf("Expected an error for an unknown location")
	}
}

func TestRecordRepository_Locations(t *testing.T) {
	repo := buildRepository(t)

	if repo.Count() != 3 {
		t.Errorf("Expected count 3, got %d", repo.Count())
	}

	locations := repo.Locations()
	if len(locations) != 2 {
		t.Fatalf("Expected 2 distinct locations, got %d", len(locations))
	}
	if locations[0] != "US" || locations[1] != "FR" {
		t.Errorf("Expected first-seen order [US FR], got %v", locations)
	}
}

func TestRecordRepository_RejectsNilRecords(t *testing.T) {
	repo := NewRecordRepository(1)
	if err := repo.LoadRecords([]*entities.VaccinationRecord{nil}); err == nil {
		t.Errorf("Expected nil record to be rejected")
	}
}
