package stats

import (
	"testing"
	"time"

	"airport_traffic/internal/airports"
	"airport_traffic/internal/flights"
	"airport_traffic/internal/models"
	"airport_traffic/internal/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fl(id, carrier, origin, dest string, status models.FlightStatus, delay int) models.Flight {
	return models.Flight{ID: id, Carrier: carrier, Origin: origin, Destination: dest, Status: status, DelayMinutes: delay}
}

var board = []models.Flight{
	fl("AF1001", "Air France", "CDG", "NCE", models.StatusOnTime, 0),
	fl("AF1002", "Air France", "CDG", "LHR", models.StatusDelayed, 30),
	fl("AF1003", "Air France", "ORY", "NCE", models.StatusDelayed, 90),
	fl("U21001", "EasyJet", "NCE", "CDG", models.StatusCancelled, 0),
	fl("U21002", "EasyJet", "NCE", "LHR", models.StatusDelayed, 10),
	fl("FR1001", "Ryanair", "BOD", "NCE", models.StatusOnTime, 0),
}

func TestEmptyInputsYieldZero(t *testing.T) {
	assert.Zero(t, OnTimeRate(nil))
	o := KeyMetrics(nil, nil)
	assert.Equal(t, Overview{}, o)
	assert.Empty(t, MeanDelayByCarrier(nil))
	assert.Empty(t, MeanDelayByAirport(nil))
	assert.Nil(t, DelayHistogram(nil, DefaultHistogramBins))
	assert.Empty(t, PerformanceByCarrier(airports.DefaultCarriers(), nil))
	assert.Empty(t, TopDestinations(nil, 15))
	assert.Empty(t, AirportDetails(airports.Default().List(), nil, nil))

	for _, s := range StatusBreakdown(nil) {
		assert.Zero(t, s.Count)
	}
}

func TestKeyMetrics(t *testing.T) {
	history := []models.TrafficRecord{{Airport: "CDG", Passengers: 3000}, {Airport: "ORY", Passengers: 6000}}
	o := KeyMetrics(board, history)
	assert.Equal(t, 6, o.Scheduled)
	assert.Equal(t, 3, o.Delayed)
	assert.Equal(t, 1, o.Cancelled)
	assert.Equal(t, 2, o.OnTime)
	assert.InDelta(t, 100.0/3, o.PunctualityPct, 1e-9)
	assert.Equal(t, 150, o.PassengersToday)
	assert.InDelta(t, 100.0/3, OnTimeRate(board), 1e-9)
}

func TestStatusBreakdown(t *testing.T) {
	assert.Equal(t, []StatusCount{
		{Status: models.StatusOnTime, Count: 2},
		{Status: models.StatusDelayed, Count: 3},
		{Status: models.StatusCancelled, Count: 1},
	}, StatusBreakdown(board))
}

func TestMeanDelays(t *testing.T) {
	assert.Equal(t, []GroupMean{
		{Key: "Air France", Flights: 2, MeanDelayMin: 60},
		{Key: "EasyJet", Flights: 1, MeanDelayMin: 10},
	}, MeanDelayByCarrier(board))

	assert.Equal(t, []GroupMean{
		{Key: "CDG", Flights: 1, MeanDelayMin: 30},
		{Key: "NCE", Flights: 1, MeanDelayMin: 10},
		{Key: "ORY", Flights: 1, MeanDelayMin: 90},
	}, MeanDelayByAirport(board))
}

func TestDelayHistogram(t *testing.T) {
	bins := DelayHistogram(board, 4)
	require.Len(t, bins, 4)
	assert.Equal(t, 10.0, bins[0].Lower)
	assert.Equal(t, 90.0, bins[3].Upper)
	assert.Equal(t, []int{1, 1, 0, 1}, []int{bins[0].Count, bins[1].Count, bins[2].Count, bins[3].Count})

	one := DelayHistogram([]models.Flight{fl("X", "", "", "", models.StatusDelayed, 45)}, 20)
	assert.Equal(t, []Bin{{Lower: 45, Upper: 45, Count: 1}}, one)
}

func TestDelayHistogramCountsEveryDelayedFlight(t *testing.T) {
	list, err := flights.GenerateInitial(rand.New(42), 200, airports.Default(), time.Now(), flights.DefaultGenerateRules())
	require.NoError(t, err)

	bins := DelayHistogram(list, DefaultHistogramBins)
	total := 0
	for _, b := range bins {
		total += b.Count
		assert.LessOrEqual(t, b.Lower, b.Upper)
	}
	assert.Equal(t, len(delayed(list)), total)
}

func TestPerformanceByCarrier(t *testing.T) {
	perf := PerformanceByCarrier(airports.DefaultCarriers(), board)
	require.Len(t, perf, 3)

	assert.Equal(t, "Air France", perf[0].Carrier)
	assert.Equal(t, 3, perf[0].Flights)
	assert.InDelta(t, 100.0/3, perf[0].PunctualityPct, 1e-9)
	assert.InDelta(t, 40.0, perf[0].MeanDelayMin, 1e-9)
	assert.Zero(t, perf[0].CancellationPct)

	assert.Equal(t, "EasyJet", perf[1].Carrier)
	assert.Equal(t, 50.0, perf[1].CancellationPct)
	assert.Equal(t, 100.0, perf[2].PunctualityPct)
}

func TestTopDestinations(t *testing.T) {
	assert.Equal(t, []DestinationCount{
		{Airport: "NCE", Flights: 3},
		{Airport: "LHR", Flights: 2},
	}, TopDestinations(board, 2))
	assert.Len(t, TopDestinations(board, 0), 3)
}

func TestGenerateActivity(t *testing.T) {
	carriers := airports.DefaultCarriers()
	act := GenerateActivity(rand.New(9), carriers)
	require.Len(t, act, len(carriers))
	for i, a := range act {
		assert.Equal(t, carriers[i], a.Carrier)
		assert.True(t, a.FlightsPerDay >= 50 && a.FlightsPerDay <= 500)
		assert.True(t, a.PassengersPerYear >= 1_000_000 && a.PassengersPerYear <= 15_000_000)
	}
	assert.Equal(t, act, GenerateActivity(rand.New(9), carriers))
}

func TestAirportDetails(t *testing.T) {
	reg := airports.Default()
	history := []models.TrafficRecord{
		{Month: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), Airport: "CDG", Passengers: 100, LoadFactor: 0.7},
		{Month: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), Airport: "CDG", Passengers: 200, LoadFactor: 0.8},
		{Month: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), Airport: "NCE", Passengers: 50, LoadFactor: 0.9},
	}
	rows := AirportDetails(reg.List(), history, board)
	require.Len(t, rows, 2)

	cdg := rows[0]
	assert.Equal(t, "CDG", cdg.Code)
	assert.Equal(t, 200.0, cdg.MonthlyPassengers)
	assert.Equal(t, 0.8, cdg.LoadFactor)
	assert.Equal(t, 2, cdg.FlightsToday)
	assert.Equal(t, 15.0, cdg.MeanDelayMin)
	assert.Positive(t, cdg.Runways)

	assert.Equal(t, "NCE", rows[1].Code)
	assert.Equal(t, 5.0, rows[1].MeanDelayMin)
}
