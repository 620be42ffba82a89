package traffic

import (
	"testing"
	"time"

	"airport_traffic/internal/airports"
	"airport_traffic/internal/models"
	"airport_traffic/internal/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	start = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC)
)

func build(t *testing.T, seed int64) []models.TrafficRecord {
	t.Helper()
	recs, err := Build(rand.New(seed), airports.Default().List(), start, end, DefaultProfile())
	require.NoError(t, err)
	return recs
}

func TestBuildOneRecordPerAirportMonth(t *testing.T) {
	recs := build(t, 42)
	reg := airports.Default()

	// Jan 2020 .. May 2024
	months := 12*4 + 5
	require.Len(t, recs, months*reg.Len())

	type key struct {
		month   time.Time
		airport string
	}
	seen := make(map[key]bool)
	for _, r := range recs {
		k := key{r.Month, r.Airport}
		require.False(t, seen[k], "duplicate record %v", k)
		seen[k] = true

		assert.GreaterOrEqual(t, r.Passengers, 0.0)
		assert.True(t, r.LoadFactor >= 0 && r.LoadFactor <= 1, "load factor %f", r.LoadFactor)
		assert.True(t, r.LoadFactor >= 0.6 && r.LoadFactor < 0.95)
		assert.True(t, r.Flights >= 5000 && r.Flights <= 50000)
		assert.Equal(t, r.Month, MonthEnd(r.Month), "records are dated at month end")

		a, err := reg.Lookup(r.Airport)
		require.NoError(t, err)
		assert.Equal(t, a.Region, r.Region)
	}

	assert.Equal(t, time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC), recs[0].Month)
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), recs[len(recs)-1].Month)
	assert.Equal(t, "CDG", recs[0].Airport)
	assert.Equal(t, "ORY", recs[1].Airport)
}

func TestBuildMultipliers(t *testing.T) {
	recs := build(t, 3)
	base := map[string]float64{}
	for _, a := range airports.Default().List() {
		base[a.Code] = float64(a.Capacity) * 0.7 / 12
	}

	p := DefaultProfile()
	for _, r := range recs {
		d := p.DisruptionRange(r.Month.Year())
		s := p.SeasonalFactor(r.Month.Month())
		lo := base[r.Airport] * d.Min * s * 0.95
		hi := base[r.Airport] * d.Max * s * 1.05
		assert.True(t, r.Passengers >= lo && r.Passengers <= hi,
			"%s %s: %.0f not in [%.0f,%.0f]", r.Airport, r.Month.Format("2006-01"), r.Passengers, lo, hi)
	}
}

func TestProfileLookups(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, Range{0.2, 0.4}, p.DisruptionRange(2020))
	assert.Equal(t, Range{0.4, 0.7}, p.DisruptionRange(2021))
	assert.Equal(t, Range{0.7, 0.9}, p.DisruptionRange(2022))
	assert.Equal(t, Range{0.9, 1.1}, p.DisruptionRange(2019))
	assert.Equal(t, Range{0.9, 1.1}, p.DisruptionRange(2030))

	for m, want := range map[time.Month]float64{
		time.June: 1.2, time.July: 1.2, time.August: 1.2,
		time.December: 1.1, time.January: 1.1,
		time.March: 1, time.September: 1,
	} {
		assert.Equal(t, want, p.SeasonalFactor(m), m.String())
	}
}

func TestBuildDeterministic(t *testing.T) {
	assert.Equal(t, build(t, 8), build(t, 8))
	assert.NotEqual(t, build(t, 8), build(t, 9))
}

func TestBuildRejectsBadRange(t *testing.T) {
	r := rand.New(1)
	list := airports.Default().List()
	cases := map[string][2]time.Time{
		"inverted": {end, start},
		"empty":    {start, start},
		"zero":     {time.Time{}, end},
	}
	for name, c := range cases {
		_, err := Build(r, list, c[0], c[1], DefaultProfile())
		assert.ErrorIs(t, err, models.ErrOutOfRange, name)
	}

	p := DefaultProfile()
	p.LoadFactor = Range{0.5, 1.5}
	_, err := Build(r, list, start, end, p)
	assert.ErrorIs(t, err, models.ErrOutOfRange)
}

func TestMonthEnds(t *testing.T) {
	got := MonthEnds(time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, []time.Time{
		time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
	}, got)

	assert.Empty(t, MonthEnds(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), AddMonths(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 2))
}
