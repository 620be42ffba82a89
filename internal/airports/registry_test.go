package airports

import (
	"errors"
	"testing"

	"airport_traffic/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{"CDG", "ORY", "NCE", "LYS", "MRS", "TLS", "BOD"}, r.Codes())
	assert.Equal(t, 7, r.Len())

	cdg, err := r.Lookup("CDG")
	require.NoError(t, err)
	assert.Equal(t, 80_000_000, cdg.Capacity)
	assert.Equal(t, 4, cdg.Runways)
	assert.Equal(t, "Île-de-France", cdg.Region)

	lower, err := r.Lookup(" ory ")
	require.NoError(t, err)
	assert.Equal(t, "ORY", lower.Code)

	assert.Len(t, r.DomesticDestinations(), 10)
	assert.Len(t, r.InternationalDestinations(), 10)
	assert.Len(t, r.Carriers(), 9)
	assert.Len(t, r.Operators(), 8)
}

func TestMarketTable(t *testing.T) {
	r := Default()
	total := 0.0
	for _, c := range r.Carriers() {
		total += c.MarketShare
	}
	assert.Equal(t, 100.0, total)

	others, ok := r.Carrier("Others")
	require.True(t, ok)
	assert.Empty(t, others.Designator)
	assert.Equal(t, 3.0, others.MarketShare)

	iberia, ok := r.Carrier("IB")
	require.True(t, ok)
	assert.Zero(t, iberia.MarketShare)

	for _, c := range r.Operators() {
		assert.NotEmpty(t, c.Designator)
	}
	_, ok = r.Carrier("")
	assert.False(t, ok)
}

func TestLookupUnknownCode(t *testing.T) {
	r := Default()
	_, err := r.Lookup("LHR")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidAirportCode))

	_, err = r.Lookup("")
	assert.ErrorIs(t, err, models.ErrInvalidAirportCode)
}

func TestListIsACopy(t *testing.T) {
	r := Default()
	list := r.List()
	list[0].Name = "changed"
	cdg, err := r.Lookup("CDG")
	require.NoError(t, err)
	assert.Equal(t, "Paris Charles de Gaulle", cdg.Name)
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, models.ErrOutOfRange)

	_, err = New(models.Airport{Code: " "})
	assert.ErrorIs(t, err, models.ErrInvalidAirportCode)

	_, err = New(models.Airport{Code: "CDG"}, models.Airport{Code: "cdg"})
	assert.ErrorIs(t, err, models.ErrInvalidAirportCode)
}

func TestCustomRegistry(t *testing.T) {
	r, err := New(models.Airport{Code: "cdg", Capacity: 1000})
	require.NoError(t, err)
	assert.Equal(t, []string{"CDG"}, r.Codes())
	assert.Equal(t, []string{"CDG"}, r.DomesticDestinations())

	r2 := r.WithDestinations([]string{"nte", "LIL"}, []string{"jfk"})
	assert.Equal(t, []string{"NTE", "LIL"}, r2.DomesticDestinations())
	assert.Equal(t, []string{"JFK"}, r2.InternationalDestinations())
	assert.Equal(t, []string{"CDG"}, r.DomesticDestinations(), "original registry untouched")

	c, ok := r.Carrier("af")
	require.True(t, ok)
	assert.Equal(t, "Air France", c.Name)
	_, ok = r.Carrier("ZZ")
	assert.False(t, ok)
}
