package flights

import (
	"strings"

	"airport_traffic/internal/models"
)

// Filter selects flights the way the departures board does. Zero fields
// match everything.
type Filter struct {
	Origin string
	Status models.FlightStatus
	Type   models.FlightType
}

func (f Filter) Match(fl models.Flight) bool {
	if f.Origin != "" && !strings.EqualFold(f.Origin, fl.Origin) {
		return false
	}
	if f.Status != "" && f.Status != fl.Status {
		return false
	}
	if f.Type != "" && f.Type != fl.Type {
		return false
	}
	return true
}

// Apply returns the matching flights in their original order.
func (f Filter) Apply(list []models.Flight) []models.Flight {
	out := make([]models.Flight, 0, len(list))
	for _, fl := range list {
		if f.Match(fl) {
			out = append(out, fl)
		}
	}
	return out
}
