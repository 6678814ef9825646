package testing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/vaxpipe/pkg/domain/entities"
	"github.com/vsinha/vaxpipe/pkg/infrastructure/repositories/memory"
)

// Count builds a present NullDecimal from a raw dose count
func Count(n int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(n), Valid: true}
}

// Absent builds a null count, meaning "no measurement"
func Absent() decimal.NullDecimal {
	return decimal.NullDecimal{}
}

// BuildSampleRepository builds a small mixed scenario: two countries with
// measured counts, one absent measurement, one joint-manufacturer label
func BuildSampleRepository() *memory.RecordRepository {
	repo := memory.NewRecordRepository(8)

	records := []entities.VaccinationRecord{
		{Location: "United States", Date: "2021-01-12", Vaccine: "Moderna", Total: Count(3_614_478)},
		{Location: "United States", Date: "2021-01-12", Vaccine: "Pfizer/BioNTech", Total: Count(5_488_697)},
		{Location: "United States", Date: "2021-01-13", Vaccine: "Moderna", Total: Count(4_108_511)},
		{Location: "France", Date: "2021-01-12", Vaccine: "Pfizer/BioNTech", Total: Count(318_216)},
		{Location: "France", Date: "2021-01-13", Vaccine: "Moderna", Total: Absent()},
		{Location: "Chile", Date: "2021-01-12", Vaccine: "Pfizer/BioNTech, Sinovac", Total: Count(8_648)},
	}

	for _, r := range records {
		repo.AddRecord(r)
	}
	return repo
}
