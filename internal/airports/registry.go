package airports

import (
	"fmt"
	"strings"

	"airport_traffic/internal/models"
)

// Registry is the closed, immutable set of airports the simulation runs on,
// together with the destination pools and carrier table flights draw from.
type Registry struct {
	airports      []models.Airport
	byCode        map[string]models.Airport
	domestic      []string
	international []string
	carriers      []models.Carrier
}

// New builds a registry over the given airports in the given order. The
// destination pools default to the airport codes (domestic) and the standard
// international pool; the carrier table defaults to DefaultCarriers.
func New(list ...models.Airport) (*Registry, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: registry needs at least one airport", models.ErrOutOfRange)
	}
	r := &Registry{
		airports: make([]models.Airport, 0, len(list)),
		byCode:   make(map[string]models.Airport, len(list)),
		carriers: DefaultCarriers(),
	}
	for _, a := range list {
		code := normalize(a.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: empty airport code", models.ErrInvalidAirportCode)
		}
		if _, dup := r.byCode[code]; dup {
			return nil, fmt.Errorf("%w: duplicate airport code %s", models.ErrInvalidAirportCode, code)
		}
		a.Code = code
		r.airports = append(r.airports, a)
		r.byCode[code] = a
		r.domestic = append(r.domestic, code)
	}
	r.international = append([]string(nil), internationalPool...)
	return r, nil
}

// Default returns the registry of the seven French airports.
func Default() *Registry {
	r, err := New(defaultAirports...)
	if err != nil {
		panic(err)
	}
	r.domestic = append([]string(nil), domesticPool...)
	return r
}

// WithDestinations replaces the destination pools. Empty pools keep the
// current ones.
func (r *Registry) WithDestinations(domestic, international []string) *Registry {
	out := *r
	if len(domestic) > 0 {
		out.domestic = normalizeAll(domestic)
	}
	if len(international) > 0 {
		out.international = normalizeAll(international)
	}
	return &out
}

// Lookup returns the airport registered under code. Unknown codes fail with
// models.ErrInvalidAirportCode; nothing is ever substituted.
func (r *Registry) Lookup(code string) (models.Airport, error) {
	a, ok := r.byCode[normalize(code)]
	if !ok {
		return models.Airport{}, fmt.Errorf("%w: %q", models.ErrInvalidAirportCode, code)
	}
	return a, nil
}

func (r *Registry) List() []models.Airport {
	return append([]models.Airport(nil), r.airports...)
}

func (r *Registry) Codes() []string {
	codes := make([]string, len(r.airports))
	for i, a := range r.airports {
		codes[i] = a.Code
	}
	return codes
}

func (r *Registry) Len() int {
	return len(r.airports)
}

func (r *Registry) DomesticDestinations() []string {
	return append([]string(nil), r.domestic...)
}

func (r *Registry) InternationalDestinations() []string {
	return append([]string(nil), r.international...)
}

// Carriers returns the full market table.
func (r *Registry) Carriers() []models.Carrier {
	return append([]models.Carrier(nil), r.carriers...)
}

// Operators returns the carriers that fly, those with a designator.
func (r *Registry) Operators() []models.Carrier {
	var out []models.Carrier
	for _, c := range r.carriers {
		if c.Designator != "" {
			out = append(out, c)
		}
	}
	return out
}

// Carrier returns the carrier with the given name or designator.
func (r *Registry) Carrier(name string) (models.Carrier, bool) {
	for _, c := range r.carriers {
		if strings.EqualFold(c.Name, name) || (c.Designator != "" && strings.EqualFold(c.Designator, name)) {
			return c, true
		}
	}
	return models.Carrier{}, false
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func normalizeAll(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = normalize(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
