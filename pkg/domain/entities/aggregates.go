package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountryTotal is one row of the by-country aggregate, in millions
type CountryTotal struct {
	Location Location        `json:"location"`
	Total    decimal.Decimal `json:"total_millions"`
}

// SeriesKey groups records by calendar date and manufacturer
type SeriesKey struct {
	Date    time.Time
	Vaccine Vaccine
}

// SeriesPoint is one entry of the by-date-and-manufacturer series, in
// millions. Records with an absent count never contribute a point.
type SeriesPoint struct {
	Date    time.Time       `json:"date"`
	Vaccine Vaccine         `json:"vaccine"`
	Total   decimal.Decimal `json:"total_millions"`
}

// Key returns the grouping key for a series point
func (p SeriesPoint) Key() SeriesKey {
	return SeriesKey{Date: p.Date, Vaccine: p.Vaccine}
}
