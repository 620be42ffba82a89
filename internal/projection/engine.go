// Package projection extrapolates the traffic history forward by compounding
// a per-airport monthly growth rate.
package projection

import (
	"fmt"
	"math"
	"time"

	"airport_traffic/internal/models"
	"airport_traffic/internal/rand"
	"airport_traffic/internal/traffic"
)

// Growth bounds the monthly growth rate drawn once per airport.
type Growth struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func DefaultGrowth() Growth {
	return Growth{Min: 0.02, Max: 0.05}
}

// Fixed returns bounds that always yield rate g.
func Fixed(g float64) Growth {
	return Growth{Min: g, Max: g}
}

const DefaultHorizon = 12

// Project returns horizon monthly records per airport, ordered by airport
// and then by month. The history is only read.
func Project(r *rand.Rand, history []models.TrafficRecord, airports []models.Airport, horizon int, g Growth) ([]models.ProjectionRecord, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: horizon %d", models.ErrOutOfRange, horizon)
	}
	if g.Max < g.Min || g.Min <= -1 {
		return nil, fmt.Errorf("%w: growth bounds [%v,%v]", models.ErrOutOfRange, g.Min, g.Max)
	}

	last := traffic.LastByAirport(history)
	out := make([]models.ProjectionRecord, 0, horizon*len(airports))
	for _, a := range airports {
		rec, ok := last[a.Code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", models.ErrMissingHistory, a.Code)
		}
		rate := r.Uniform(g.Min, g.Max)
		for i := 1; i <= horizon; i++ {
			out = append(out, models.ProjectionRecord{
				Month:      traffic.AddMonths(rec.Month, i),
				Airport:    a.Code,
				Passengers: rec.Passengers * math.Pow(1+rate, float64(i)),
				GrowthRate: rate,
			})
		}
	}
	return out, nil
}

const (
	KindHistorical = "historical"
	KindProjection = "projection"
)

// Point is one entry of a combined history-plus-projection series.
type Point struct {
	Month      time.Time `json:"month"`
	Airport    string    `json:"airport"`
	Passengers float64   `json:"passengers"`
	Kind       string    `json:"kind"`
}

// Combine overlays the history dated on or after since with the projections.
func Combine(history []models.TrafficRecord, projections []models.ProjectionRecord, since time.Time) []Point {
	recent := traffic.Since(history, since)
	out := make([]Point, 0, len(recent)+len(projections))
	for _, h := range recent {
		out = append(out, Point{Month: h.Month, Airport: h.Airport, Passengers: h.Passengers, Kind: KindHistorical})
	}
	for _, p := range projections {
		out = append(out, Point{Month: p.Month, Airport: p.Airport, Passengers: p.Passengers, Kind: KindProjection})
	}
	return out
}
