package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/vaxpipe/pkg/application/services"
	"github.com/vsinha/vaxpipe/pkg/domain/entities"
	"github.com/vsinha/vaxpipe/pkg/infrastructure/events"
	"github.com/vsinha/vaxpipe/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	repo := memory.NewRecordRepository(8)
	setupSampleRecords(repo)

	store := events.NewInMemoryEventStore()
	service := services.NewReportService(nil, store)

	fmt.Println("Running vaccination aggregation pipeline...")
	report, err := service.BuildReport(ctx, repo, "in-memory sample", 0)
	if err != nil {
		fmt.Printf("Pipeline failed: %v\n", err)
		return
	}

	fmt.Printf("Worldwide total: %s million doses\n\n", report.Worldwide)

	fmt.Println("By country:")
	for _, entry := range report.ByCountry {
		fmt.Printf("  %-20s %s\n", entry.Location, entry.Total)
	}
	fmt.Println()

	fmt.Println("Series (date, vaccine):")
	for _, point := range report.Series {
		fmt.Printf("  %s  %-20s %s\n",
			point.Date.Format(entities.DateLayout), point.Vaccine, point.Total)
	}
	fmt.Println()

	trail, _ := store.ReadEvents(report.RunID, 0)
	fmt.Printf("Run trail: %d stage events recorded\n", len(trail))
}

func setupSampleRecords(repo *memory.RecordRepository) {
	count := func(n int64) decimal.NullDecimal {
		return decimal.NullDecimal{Decimal: decimal.NewFromInt(n), Valid: true}
	}

	records := []entities.VaccinationRecord{
		{Location: "United States", Date: "2021-01-12", Vaccine: "Moderna", Total: count(3_614_478)},
		{Location: "United States", Date: "2021-01-12", Vaccine: "Pfizer/BioNTech", Total: count(5_488_697)},
		{Location: "United States", Date: "2021-01-13", Vaccine: "Moderna", Total: count(4_108_511)},
		{Location: "France", Date: "2021-01-12", Vaccine: "Pfizer/BioNTech", Total: count(318_216)},
		{Location: "France", Date: "2021-01-13", Vaccine: "Moderna", Total: decimal.NullDecimal{}},
		{Location: "Chile", Date: "2021-01-12", Vaccine: "Pfizer/BioNTech", Total: count(8_648)},
	}

	for _, r := range records {
		repo.AddRecord(r)
	}
}
