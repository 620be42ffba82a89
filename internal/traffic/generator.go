// Package traffic synthesizes the monthly passenger history and answers the
// aggregate queries the dashboards ask of it. Everything here is pure: the
// only state is the random source passed in by the caller.
package traffic

import (
	"fmt"
	"time"

	"airport_traffic/internal/models"
	"airport_traffic/internal/rand"
)

// Build generates one record per airport for every month end in
// [start,end], ordered by month and then by airport order.
func Build(r *rand.Rand, airports []models.Airport, start, end time.Time, p Profile) ([]models.TrafficRecord, error) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return nil, fmt.Errorf("%w: date range %s..%s", models.ErrOutOfRange, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	months := MonthEnds(start, end)
	out := make([]models.TrafficRecord, 0, len(months)*len(airports))
	for _, month := range months {
		disruption := p.DisruptionRange(month.Year())
		seasonal := p.SeasonalFactor(month.Month())
		for _, a := range airports {
			base := float64(a.Capacity) * p.BaselineUtilization
			impact := r.Uniform(disruption.Min, disruption.Max)
			noise := r.Uniform(p.Noise.Min, p.Noise.Max)

			out = append(out, models.TrafficRecord{
				Month:      month,
				Airport:    a.Code,
				Passengers: base / 12 * impact * seasonal * noise,
				Flights:    r.IntRange(p.FlightsMin, p.FlightsMax),
				LoadFactor: r.Uniform(p.LoadFactor.Min, p.LoadFactor.Max),
				Region:     a.Region,
			})
		}
	}
	return out, nil
}

// MonthEnd returns midnight UTC on the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// AddMonths returns the month end n calendar months after t's month.
func AddMonths(t time.Time, n int) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month()+time.Month(n)+1, 0, 0, 0, 0, 0, time.UTC)
}

// MonthEnds lists every month end falling in [start,end], comparing start
// by calendar day.
func MonthEnds(start, end time.Time) []time.Time {
	s := start.UTC()
	first := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)

	var out []time.Time
	for m := MonthEnd(first); !m.After(end); m = AddMonths(m, 1) {
		if !m.Before(first) {
			out = append(out, m)
		}
	}
	return out
}
