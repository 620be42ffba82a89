package traffic

import (
	"sort"
	"strings"
	"time"

	"airport_traffic/internal/models"
)

type MonthTotal struct {
	Month      time.Time `json:"month"`
	Passengers float64   `json:"passengers"`
	Flights    int       `json:"flights"`
}

type RegionTotal struct {
	Region     string  `json:"region"`
	Passengers float64 `json:"passengers"`
}

type ImpactPoint struct {
	Month        time.Time `json:"month"`
	Airport      string    `json:"airport"`
	Passengers   float64   `json:"passengers"`
	VariationPct float64   `json:"variation_pct"`
}

// Latest returns the records of the most recent month.
func Latest(records []models.TrafficRecord) []models.TrafficRecord {
	var last time.Time
	for _, r := range records {
		if r.Month.After(last) {
			last = r.Month
		}
	}
	var out []models.TrafficRecord
	for _, r := range records {
		if r.Month.Equal(last) {
			out = append(out, r)
		}
	}
	return out
}

// LastByAirport returns each airport's most recent record.
func LastByAirport(records []models.TrafficRecord) map[string]models.TrafficRecord {
	out := make(map[string]models.TrafficRecord)
	for _, r := range records {
		if cur, ok := out[r.Airport]; !ok || r.Month.After(cur.Month) {
			out[r.Airport] = r
		}
	}
	return out
}

func ByAirport(records []models.TrafficRecord, code string) []models.TrafficRecord {
	var out []models.TrafficRecord
	for _, r := range records {
		if strings.EqualFold(r.Airport, code) {
			out = append(out, r)
		}
	}
	return out
}

// Since returns the records dated on or after t.
func Since(records []models.TrafficRecord, t time.Time) []models.TrafficRecord {
	var out []models.TrafficRecord
	for _, r := range records {
		if !r.Month.Before(t) {
			out = append(out, r)
		}
	}
	return out
}

// Between returns the records dated in [from,to].
func Between(records []models.TrafficRecord, from, to time.Time) []models.TrafficRecord {
	var out []models.TrafficRecord
	for _, r := range records {
		if !r.Month.Before(from) && !r.Month.After(to) {
			out = append(out, r)
		}
	}
	return out
}

// TotalsByMonth sums passengers and flights across airports, in month order.
func TotalsByMonth(records []models.TrafficRecord) []MonthTotal {
	idx := make(map[time.Time]int)
	var out []MonthTotal
	for _, r := range records {
		i, ok := idx[r.Month]
		if !ok {
			i = len(out)
			idx[r.Month] = i
			out = append(out, MonthTotal{Month: r.Month})
		}
		out[i].Passengers += r.Passengers
		out[i].Flights += r.Flights
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// ByRegion sums passengers per region, sorted by region name.
func ByRegion(records []models.TrafficRecord) []RegionTotal {
	sums := make(map[string]float64)
	for _, r := range records {
		sums[r.Region] += r.Passengers
	}
	out := make([]RegionTotal, 0, len(sums))
	for region, p := range sums {
		out = append(out, RegionTotal{Region: region, Passengers: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Region < out[j].Region })
	return out
}

// ImpactVsBaseline expresses every record in [from,to] as a percent
// variation against the mean monthly passengers of baselineYear. It fails
// with models.ErrNoBaseline when the history has no record for that year.
func ImpactVsBaseline(records []models.TrafficRecord, baselineYear int, from, to time.Time) ([]ImpactPoint, error) {
	sum, n := 0.0, 0
	for _, r := range records {
		if r.Month.Year() == baselineYear {
			sum += r.Passengers
			n++
		}
	}
	if n == 0 {
		return nil, models.ErrNoBaseline
	}
	mean := sum / float64(n)

	var out []ImpactPoint
	for _, r := range Between(records, from, to) {
		v := 0.0
		if mean > 0 {
			v = (r.Passengers - mean) / mean * 100
		}
		out = append(out, ImpactPoint{Month: r.Month, Airport: r.Airport, Passengers: r.Passengers, VariationPct: v})
	}
	return out, nil
}

// EstimatedDailyPassengers approximates one day of traffic as the mean
// monthly record divided by 30. It is 0 for an empty history.
func EstimatedDailyPassengers(records []models.TrafficRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range records {
		sum += r.Passengers
	}
	return sum / float64(len(records)) / 30
}

// FirstYear returns the calendar year of the earliest record.
func FirstYear(records []models.TrafficRecord) (int, bool) {
	if len(records) == 0 {
		return 0, false
	}
	first := records[0].Month
	for _, r := range records[1:] {
		if r.Month.Before(first) {
			first = r.Month
		}
	}
	return first.Year(), true
}
