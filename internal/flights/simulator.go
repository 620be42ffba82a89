// Package flights holds the flight-state transitions. Every function here is
// a pure transition over a flight slice and an injected random source; the
// caller owns the collection and decides when to commit a result.
package flights

import (
	"fmt"
	"strconv"
	"time"

	"airport_traffic/internal/airports"
	"airport_traffic/internal/models"
	"airport_traffic/internal/rand"
)

// TickResult summarizes one tick.
type TickResult struct {
	Resampled int `json:"resampled"`
	Changed   int `json:"changed"`
}

// GenerateInitial creates n flights departing from the registry airports
// around now.
func GenerateInitial(r *rand.Rand, n int, reg *airports.Registry, now time.Time, rules GenerateRules) ([]models.Flight, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: flight count %d", models.ErrOutOfRange, n)
	}
	if err := rules.validate(); err != nil {
		return nil, err
	}
	carriers := reg.Operators()
	if len(carriers) == 0 {
		return nil, fmt.Errorf("%w: no carriers", models.ErrOutOfRange)
	}
	idSpace := len(carriers) * (rules.FlightNumberMax - rules.FlightNumberMin + 1)
	if n > idSpace {
		return nil, fmt.Errorf("%w: flight count %d exceeds %d available ids", models.ErrOutOfRange, n, idSpace)
	}

	origins := reg.Codes()
	domestic := reg.DomesticDestinations()
	international := reg.InternationalDestinations()
	now = now.UTC().Truncate(time.Minute)
	earliest := int(rules.EarliestOffset / time.Minute)
	latest := int(rules.LatestOffset / time.Minute)

	used := make(map[string]bool, n)
	out := make([]models.Flight, 0, n)
	for len(out) < n {
		origin := rand.SampleSlice(r, origins)
		pick := func(pool []string) string {
			idx := rand.SampleFiltered(r, pool, func(c string) bool { return c != origin })
			if idx < 0 {
				return ""
			}
			return pool[idx]
		}

		ftype, dest := models.FlightDomestic, ""
		if r.Bernoulli(rules.InternationalShare) {
			ftype, dest = models.FlightInternational, pick(international)
		} else {
			dest = pick(domestic)
		}
		if dest == "" {
			// the drawn pool only holds the origin; fall back to the other one
			if ftype == models.FlightDomestic {
				ftype, dest = models.FlightInternational, pick(international)
			} else {
				ftype, dest = models.FlightDomestic, pick(domestic)
			}
		}
		if dest == "" {
			return nil, fmt.Errorf("%w: no destination distinct from %s", models.ErrOutOfRange, origin)
		}

		scheduled := now.Add(time.Duration(r.IntRange(earliest, latest)) * time.Minute)
		status := sampleStatus(r, rules.Status)
		delay := 0
		if status == models.StatusDelayed {
			delay = r.IntRange(rules.DelayMin, rules.DelayMax)
		}

		carrier := rand.SampleSlice(r, carriers)
		id := carrier.Designator + strconv.Itoa(r.IntRange(rules.FlightNumberMin, rules.FlightNumberMax))
		for used[id] {
			carrier = rand.SampleSlice(r, carriers)
			id = carrier.Designator + strconv.Itoa(r.IntRange(rules.FlightNumberMin, rules.FlightNumberMax))
		}
		used[id] = true

		gate := string(rules.GateLetters[r.Intn(len(rules.GateLetters))]) + strconv.Itoa(r.IntRange(1, rules.GateMax))

		out = append(out, apply(models.Flight{
			ID:                 id,
			Carrier:            carrier.Name,
			Origin:             origin,
			Destination:        dest,
			Type:               ftype,
			ScheduledDeparture: scheduled,
			Gate:               gate,
		}, status, delay))
	}
	return out, nil
}

// Tick resamples each flight's status independently with probability
// rules.ResampleProbability and returns the resulting batch. The input slice
// is never modified; flights that are not selected are copied unchanged.
func Tick(r *rand.Rand, flights []models.Flight, rules TickRules) ([]models.Flight, TickResult, error) {
	if err := rules.validate(); err != nil {
		return nil, TickResult{}, err
	}
	next := make([]models.Flight, len(flights))
	copy(next, flights)

	var res TickResult
	for i := range next {
		if !r.Bernoulli(rules.ResampleProbability) {
			continue
		}
		res.Resampled++
		status := sampleStatus(r, rules.Status)
		delay := 0
		if status == models.StatusDelayed {
			delay = r.IntRange(rules.DelayMin, rules.DelayMax)
		}
		prev := next[i]
		next[i] = apply(prev, status, delay)
		if prev.Status != next[i].Status || prev.DelayMinutes != next[i].DelayMinutes {
			res.Changed++
		}
	}
	return next, res, nil
}

// Force sets a flight's status directly. A delayed flight needs a positive
// delay; for any other status the delay is dropped.
func Force(f models.Flight, status models.FlightStatus, delayMinutes int) (models.Flight, error) {
	if !status.Valid() {
		return f, fmt.Errorf("%w: status %q", models.ErrOutOfRange, status)
	}
	if status == models.StatusDelayed && delayMinutes <= 0 {
		return f, fmt.Errorf("%w: delayed flight needs a positive delay, got %d", models.ErrOutOfRange, delayMinutes)
	}
	return apply(f, status, delayMinutes), nil
}

// Validate checks the status/delay invariants of a single flight.
func Validate(f models.Flight) error {
	if !f.Status.Valid() {
		return fmt.Errorf("flight %s: unknown status %q", f.ID, f.Status)
	}
	if f.DelayMinutes < 0 {
		return fmt.Errorf("flight %s: negative delay %d", f.ID, f.DelayMinutes)
	}
	if (f.Status == models.StatusDelayed) != (f.DelayMinutes > 0) {
		return fmt.Errorf("flight %s: status %s with delay %d", f.ID, f.Status, f.DelayMinutes)
	}
	if want := f.ScheduledDeparture.Add(time.Duration(f.DelayMinutes) * time.Minute); !f.EstimatedDeparture.Equal(want) {
		return fmt.Errorf("flight %s: estimated departure %s, want %s", f.ID, f.EstimatedDeparture, want)
	}
	return nil
}

// ValidateAll checks every flight and that ids are unique.
func ValidateAll(flights []models.Flight) error {
	seen := make(map[string]bool, len(flights))
	for _, f := range flights {
		if seen[f.ID] {
			return fmt.Errorf("duplicate flight id %s", f.ID)
		}
		seen[f.ID] = true
		if err := Validate(f); err != nil {
			return err
		}
	}
	return nil
}

func apply(f models.Flight, status models.FlightStatus, delay int) models.Flight {
	if status != models.StatusDelayed {
		delay = 0
	}
	f.Status = status
	f.DelayMinutes = delay
	f.EstimatedDeparture = f.ScheduledDeparture.Add(time.Duration(delay) * time.Minute)
	return f
}

func sampleStatus(r *rand.Rand, w StatusWeights) models.FlightStatus {
	idx := rand.SampleWeighted(r, models.Statuses, w.weight)
	if idx < 0 {
		return models.StatusOnTime
	}
	return models.Statuses[idx]
}
