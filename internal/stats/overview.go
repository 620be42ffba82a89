// Package stats derives dashboard metrics from snapshots of the flight board
// and the traffic history. Nothing here keeps state; every rate and mean is 0
// over an empty input rather than an error.
package stats

import (
	"airport_traffic/internal/models"
	"airport_traffic/internal/traffic"
)

// Overview is the headline row of the dashboard.
type Overview struct {
	Scheduled       int     `json:"scheduled"`
	Delayed         int     `json:"delayed"`
	Cancelled       int     `json:"cancelled"`
	OnTime          int     `json:"on_time"`
	PunctualityPct  float64 `json:"punctuality_pct"`
	PassengersToday int     `json:"estimated_passengers_today"`
}

type StatusCount struct {
	Status models.FlightStatus `json:"status"`
	Count  int                 `json:"count"`
}

func countStatus(flights []models.Flight) map[models.FlightStatus]int {
	out := make(map[models.FlightStatus]int, len(models.Statuses))
	for _, f := range flights {
		out[f.Status]++
	}
	return out
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// OnTimeRate is the percentage of flights that are neither delayed nor
// cancelled.
func OnTimeRate(flights []models.Flight) float64 {
	c := countStatus(flights)
	return pct(c[models.StatusOnTime], len(flights))
}

func KeyMetrics(flights []models.Flight, history []models.TrafficRecord) Overview {
	c := countStatus(flights)
	return Overview{
		Scheduled:       len(flights),
		Delayed:         c[models.StatusDelayed],
		Cancelled:       c[models.StatusCancelled],
		OnTime:          c[models.StatusOnTime],
		PunctualityPct:  pct(c[models.StatusOnTime], len(flights)),
		PassengersToday: int(traffic.EstimatedDailyPassengers(history)),
	}
}

// StatusBreakdown counts flights per status in display order, including
// statuses with no flights.
func StatusBreakdown(flights []models.Flight) []StatusCount {
	c := countStatus(flights)
	out := make([]StatusCount, 0, len(models.Statuses))
	for _, s := range models.Statuses {
		out = append(out, StatusCount{Status: s, Count: c[s]})
	}
	return out
}
