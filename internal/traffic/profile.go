package traffic

import (
	"fmt"
	"time"

	"airport_traffic/internal/models"
)

// Range is a closed-open interval [Min,Max) that values are drawn from
// uniformly.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) valid() bool {
	return r.Min <= r.Max
}

// Profile holds the shock and seasonality assumptions behind the synthetic
// series. The defaults mirror a pandemic collapse in 2020 and recovery by
// 2023; they are demonstration values, not calibrated ones.
type Profile struct {
	BaselineUtilization float64
	Disruption          map[int]Range
	DefaultDisruption   Range
	Seasonal            map[time.Month]float64
	Noise               Range
	FlightsMin          int
	FlightsMax          int
	LoadFactor          Range
}

func DefaultProfile() Profile {
	return Profile{
		BaselineUtilization: 0.7,
		Disruption: map[int]Range{
			2020: {0.2, 0.4},
			2021: {0.4, 0.7},
			2022: {0.7, 0.9},
		},
		DefaultDisruption: Range{0.9, 1.1},
		Seasonal: map[time.Month]float64{
			time.June:     1.2,
			time.July:     1.2,
			time.August:   1.2,
			time.December: 1.1,
			time.January:  1.1,
		},
		Noise:      Range{0.95, 1.05},
		FlightsMin: 5000,
		FlightsMax: 50000,
		LoadFactor: Range{0.6, 0.95},
	}
}

// DisruptionRange returns the multiplier range for a year.
func (p Profile) DisruptionRange(year int) Range {
	if r, ok := p.Disruption[year]; ok {
		return r
	}
	return p.DefaultDisruption
}

// SeasonalFactor returns the multiplier for a calendar month, 1 when unset.
func (p Profile) SeasonalFactor(m time.Month) float64 {
	if f, ok := p.Seasonal[m]; ok {
		return f
	}
	return 1
}

func (p Profile) validate() error {
	if p.BaselineUtilization <= 0 {
		return fmt.Errorf("%w: baseline utilization %v", models.ErrOutOfRange, p.BaselineUtilization)
	}
	for year, r := range p.Disruption {
		if !r.valid() || r.Min < 0 {
			return fmt.Errorf("%w: disruption range for %d", models.ErrOutOfRange, year)
		}
	}
	if !p.DefaultDisruption.valid() || p.DefaultDisruption.Min < 0 {
		return fmt.Errorf("%w: default disruption range", models.ErrOutOfRange)
	}
	for m, f := range p.Seasonal {
		if f < 0 {
			return fmt.Errorf("%w: seasonal factor for %s", models.ErrOutOfRange, m)
		}
	}
	if !p.Noise.valid() || p.Noise.Min < 0 {
		return fmt.Errorf("%w: noise range", models.ErrOutOfRange)
	}
	if p.FlightsMin < 0 || p.FlightsMax < p.FlightsMin {
		return fmt.Errorf("%w: monthly flights range [%d,%d]", models.ErrOutOfRange, p.FlightsMin, p.FlightsMax)
	}
	if !p.LoadFactor.valid() || p.LoadFactor.Min < 0 || p.LoadFactor.Max > 1 {
		return fmt.Errorf("%w: load factor range", models.ErrOutOfRange)
	}
	return nil
}
