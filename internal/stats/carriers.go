package stats

import (
	"sort"

	"airport_traffic/internal/models"
	"airport_traffic/internal/rand"
)

const DefaultTopDestinations = 15

type CarrierPerformance struct {
	Carrier         string  `json:"carrier"`
	Flights         int     `json:"flights"`
	PunctualityPct  float64 `json:"punctuality_pct"`
	MeanDelayMin    float64 `json:"mean_delay_min"`
	CancellationPct float64 `json:"cancellation_pct"`
}

type DestinationCount struct {
	Airport string `json:"airport"`
	Flights int    `json:"flights"`
}

// PerformanceByCarrier reports one row per carrier in carriers order that
// has at least one flight. The mean delay covers all of its flights.
func PerformanceByCarrier(carriers []models.Carrier, flights []models.Flight) []CarrierPerformance {
	var out []CarrierPerformance
	for _, c := range carriers {
		var n, onTime, cancelled, delay int
		for _, f := range flights {
			if f.Carrier != c.Name {
				continue
			}
			n++
			delay += f.DelayMinutes
			switch f.Status {
			case models.StatusOnTime:
				onTime++
			case models.StatusCancelled:
				cancelled++
			}
		}
		if n == 0 {
			continue
		}
		out = append(out, CarrierPerformance{
			Carrier:         c.Name,
			Flights:         n,
			PunctualityPct:  pct(onTime, n),
			MeanDelayMin:    float64(delay) / float64(n),
			CancellationPct: pct(cancelled, n),
		})
	}
	return out
}

// TopDestinations ranks destinations by flight count, ties broken by code.
// A non-positive n returns every destination.
func TopDestinations(flights []models.Flight, n int) []DestinationCount {
	counts := make(map[string]int)
	for _, f := range flights {
		counts[f.Destination]++
	}
	out := make([]DestinationCount, 0, len(counts))
	for code, c := range counts {
		out = append(out, DestinationCount{Airport: code, Flights: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Flights != out[j].Flights {
			return out[i].Flights > out[j].Flights
		}
		return out[i].Airport < out[j].Airport
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// GenerateActivity draws the daily flights and yearly passengers of each
// carrier.
func GenerateActivity(r *rand.Rand, carriers []models.Carrier) []models.CarrierActivity {
	out := make([]models.CarrierActivity, 0, len(carriers))
	for _, c := range carriers {
		out = append(out, models.CarrierActivity{
			Carrier:           c,
			FlightsPerDay:     r.IntRange(50, 500),
			PassengersPerYear: r.IntRange(1_000_000, 15_000_000),
		})
	}
	return out
}
