package stats

import (
	"sort"

	"airport_traffic/internal/models"
)

const DefaultHistogramBins = 20

// GroupMean is the mean delay of one carrier or airport.
type GroupMean struct {
	Key          string  `json:"key"`
	Flights      int     `json:"flights"`
	MeanDelayMin float64 `json:"mean_delay_min"`
}

type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

func delayed(flights []models.Flight) []models.Flight {
	var out []models.Flight
	for _, f := range flights {
		if f.Status == models.StatusDelayed {
			out = append(out, f)
		}
	}
	return out
}

func meanBy(flights []models.Flight, key func(models.Flight) string) []GroupMean {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, f := range flights {
		k := key(f)
		sums[k] += f.DelayMinutes
		counts[k]++
	}
	out := make([]GroupMean, 0, len(counts))
	for k, n := range counts {
		out = append(out, GroupMean{Key: k, Flights: n, MeanDelayMin: float64(sums[k]) / float64(n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// MeanDelayByCarrier averages the delay of delayed flights per carrier.
func MeanDelayByCarrier(flights []models.Flight) []GroupMean {
	return meanBy(delayed(flights), func(f models.Flight) string { return f.Carrier })
}

// MeanDelayByAirport averages the delay of delayed flights per origin.
func MeanDelayByAirport(flights []models.Flight) []GroupMean {
	return meanBy(delayed(flights), func(f models.Flight) string { return f.Origin })
}

// DelayHistogram spreads the delays of delayed flights over bins of equal
// width between the smallest and largest delay. The last bin is closed.
func DelayHistogram(flights []models.Flight, bins int) []Bin {
	d := delayed(flights)
	if len(d) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := d[0].DelayMinutes, d[0].DelayMinutes
	for _, f := range d[1:] {
		lo = min(lo, f.DelayMinutes)
		hi = max(hi, f.DelayMinutes)
	}
	if lo == hi {
		return []Bin{{Lower: float64(lo), Upper: float64(hi), Count: len(d)}}
	}

	width := float64(hi-lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = float64(lo) + float64(i)*width
		out[i].Upper = float64(lo) + float64(i+1)*width
	}
	out[bins-1].Upper = float64(hi)
	for _, f := range d {
		i := int(float64(f.DelayMinutes-lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}
