package transaction

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPeriod is returned for a missing or out-of-range year or month.
var ErrInvalidPeriod = errors.New("invalid year or month")

// Period is the calendar month a normalization run is filtered to.
type Period struct {
	Year  int `json:"year" bson:"year"`
	Month int `json:"month" bson:"month"`
}

// ParsePeriod parses query or path parameters into a validated Period.
func ParsePeriod(year, month string) (Period, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}

	p := Period{Year: y, Month: m}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate rejects a non-positive year and a month outside 1..12.
func (p Period) Validate() error {
	if p.Year <= 0 || p.Month < 1 || p.Month > 12 {
		return ErrInvalidPeriod
	}
	return nil
}

// String formats the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
