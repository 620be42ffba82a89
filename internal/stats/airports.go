package stats

import (
	"airport_traffic/internal/models"
	"airport_traffic/internal/traffic"
)

type AirportDetail struct {
	Code              string  `json:"code"`
	Name              string  `json:"name"`
	Region            string  `json:"region"`
	MonthlyPassengers float64 `json:"monthly_passengers"`
	LoadFactor        float64 `json:"load_factor"`
	FlightsToday      int     `json:"flights_today"`
	MeanDelayMin      float64 `json:"mean_delay_min"`
	Runways           int     `json:"runways"`
	Terminals         int     `json:"terminals"`
}

// AirportDetails builds one row per airport that has both a traffic record
// and departing flights. The mean delay covers every departure.
func AirportDetails(list []models.Airport, history []models.TrafficRecord, flights []models.Flight) []AirportDetail {
	last := traffic.LastByAirport(history)
	var out []AirportDetail
	for _, a := range list {
		rec, ok := last[a.Code]
		if !ok {
			continue
		}
		n, delay := 0, 0
		for _, f := range flights {
			if f.Origin == a.Code {
				n++
				delay += f.DelayMinutes
			}
		}
		if n == 0 {
			continue
		}
		out = append(out, AirportDetail{
			Code:              a.Code,
			Name:              a.Name,
			Region:            a.Region,
			MonthlyPassengers: rec.Passengers,
			LoadFactor:        rec.LoadFactor,
			FlightsToday:      n,
			MeanDelayMin:      float64(delay) / float64(n),
			Runways:           a.Runways,
			Terminals:         a.Terminals,
		})
	}
	return out
}
