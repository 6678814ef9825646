package services

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/vaxpipe/pkg/domain/entities"
)

// parallelThreshold is the minimum record count before a partitioned fold pays off
const parallelThreshold = 2048

// Aggregator produces the three derived views from normalized records. All
// reductions are pure: they never mutate their input and share no state.
type Aggregator struct {
	workers int
}

// NewAggregator creates a sequential aggregator
func NewAggregator() *Aggregator {
	return NewAggregatorWithWorkers(1)
}

// NewAggregatorWithWorkers creates an aggregator that partitions its folds
// across the given number of goroutines. Summation is associative, so the
// partitioned fold gives identical results; all ordering is applied after
// the folds complete.
func NewAggregatorWithWorkers(workers int) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{workers: workers}
}

// Worldwide sums all counts across all records, treating absent as zero.
// The result equals the sum of all by-country totals.
func (a *Aggregator) Worldwide(records []entities.NormalizedRecord) decimal.Decimal {
	if a.workers > 1 && len(records) >= parallelThreshold {
		return a.worldwideParallel(records)
	}
	total := decimal.Zero
	for _, r := range records {
		if r.Total.Valid {
			total = total.Add(r.Total.Decimal)
		}
	}
	return total
}

func (a *Aggregator) worldwideParallel(records []entities.NormalizedRecord) decimal.Decimal {
	parts := partition(records, a.workers)
	partials := make([]decimal.Decimal, len(parts))

	var g errgroup.Group
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			sum := decimal.Zero
			for _, r := range part {
				if r.Total.Valid {
					sum = sum.Add(r.Total.Decimal)
				}
			}
			partials[i] = sum
			return nil
		})
	}
	// The fold cannot fail; errgroup is used only to join the workers.
	_ = g.Wait()

	total := decimal.Zero
	for _, p := range partials {
		total = total.Add(p)
	}
	return total
}

// ByCountry groups by location, treating absent as zero, and sorts by total
// descending. Equal totals keep the order in which their locations were
// first encountered in the input.
func (a *Aggregator) ByCountry(records []entities.NormalizedRecord) []entities.CountryTotal {
	var folds []*countryFold
	if a.workers > 1 && len(records) >= parallelThreshold {
		parts := partition(records, a.workers)
		folds = make([]*countryFold, len(parts))

		var g errgroup.Group
		for i, part := range parts {
			i, part := i, part
			g.Go(func() error {
				folds[i] = foldCountries(part)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		folds = []*countryFold{foldCountries(records)}
	}

	// Merge partitions in input order so first-seen order stays global.
	merged := newCountryFold(0)
	for _, f := range folds {
		for _, loc := range f.order {
			merged.add(loc, f.totals[loc])
		}
	}

	result := make([]entities.CountryTotal, 0, len(merged.order))
	for _, loc := range merged.order {
		result = append(result, entities.CountryTotal{Location: loc, Total: merged.totals[loc]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})
	return result
}

// ByDateManufacturer discards absent-count records, groups by (date, vaccine),
// and orders by ascending date with manufacturer first-seen order breaking
// ties. Absent counts are dropped rather than zero-filled: a time series with
// injected zeros would report "no measurement" as "measured zero".
func (a *Aggregator) ByDateManufacturer(records []entities.NormalizedRecord) []entities.SeriesPoint {
	var folds []*seriesFold
	if a.workers > 1 && len(records) >= parallelThreshold {
		parts := partition(records, a.workers)
		folds = make([]*seriesFold, len(parts))

		var g errgroup.Group
		for i, part := range parts {
			i, part := i, part
			g.Go(func() error {
				folds[i] = foldSeries(part)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		folds = []*seriesFold{foldSeries(records)}
	}

	merged := newSeriesFold(0)
	for _, f := range folds {
		for _, key := range f.order {
			merged.add(key, f.totals[key])
		}
	}

	result := make([]entities.SeriesPoint, 0, len(merged.order))
	for _, key := range merged.order {
		result = append(result, entities.SeriesPoint{
			Date:    key.Date,
			Vaccine: key.Vaccine,
			Total:   merged.totals[key],
		})
	}
	// Stable sort on date only: within a date, first-seen key order survives.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}

// countryFold accumulates per-location totals preserving encounter order
type countryFold struct {
	totals map[entities.Location]decimal.Decimal
	order  []entities.Location
}

func newCountryFold(expected int) *countryFold {
	return &countryFold{
		totals: make(map[entities.Location]decimal.Decimal, expected),
		order:  make([]entities.Location, 0, expected),
	}
}

func (f *countryFold) add(loc entities.Location, amount decimal.Decimal) {
	if existing, ok := f.totals[loc]; ok {
		f.totals[loc] = existing.Add(amount)
		return
	}
	f.totals[loc] = amount
	f.order = append(f.order, loc)
}

func foldCountries(records []entities.NormalizedRecord) *countryFold {
	fold := newCountryFold(16)
	for _, r := range records {
		amount := decimal.Zero
		if r.Total.Valid {
			amount = r.Total.Decimal
		}
		fold.add(r.Location, amount)
	}
	return fold
}

// seriesFold accumulates per-(date,vaccine) totals preserving encounter order
type seriesFold struct {
	totals map[entities.SeriesKey]decimal.Decimal
	order  []entities.SeriesKey
}

func newSeriesFold(expected int) *seriesFold {
	return &seriesFold{
		totals: make(map[entities.SeriesKey]decimal.Decimal, expected),
		order:  make([]entities.SeriesKey, 0, expected),
	}
}

func (f *seriesFold) add(key entities.SeriesKey, amount decimal.Decimal) {
	if existing, ok := f.totals[key]; ok {
		f.totals[key] = existing.Add(amount)
		return
	}
	f.totals[key] = amount
	f.order = append(f.order, key)
}

func foldSeries(records []entities.NormalizedRecord) *seriesFold {
	fold := newSeriesFold(16)
	for _, r := range records {
		if !r.Total.Valid {
			continue
		}
		fold.add(entities.SeriesKey{Date: r.Date, Vaccine: r.Vaccine}, r.Total.Decimal)
	}
	return fold
}

// partition splits records into at most n contiguous chunks
func partition(records []entities.NormalizedRecord, n int) [][]entities.NormalizedRecord {
	if n > len(records) {
		n = len(records)
	}
	parts := make([][]entities.NormalizedRecord, 0, n)
	size := (len(records) + n - 1) / n
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		parts = append(parts, records[start:end])
	}
	return parts
}
