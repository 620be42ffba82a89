package models

import "time"

type Airport struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Capacity  int     `json:"passenger_capacity"`
	Runways   int     `json:"runways"`
	Terminals int     `json:"terminals"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Color     string  `json:"color"`
}

type Carrier struct {
	Name        string  `json:"name"`
	Designator  string  `json:"designator"`
	Country     string  `json:"country"`
	MarketShare float64 `json:"market_share_pct"`
	Color       string  `json:"color"`
}

// CarrierActivity is generated once at startup for each carrier.
type CarrierActivity struct {
	Carrier           Carrier `json:"carrier"`
	FlightsPerDay     int     `json:"flights_per_day"`
	PassengersPerYear int     `json:"passengers_per_year"`
}

type FlightType string

const (
	FlightDomestic      FlightType = "domestic"
	FlightInternational FlightType = "international"
)

type FlightStatus string

const (
	StatusOnTime    FlightStatus = "on_time"
	StatusDelayed   FlightStatus = "delayed"
	StatusCancelled FlightStatus = "cancelled"
)

// Statuses lists every flight status in display order.
var Statuses = []FlightStatus{StatusOnTime, StatusDelayed, StatusCancelled}

func (s FlightStatus) Valid() bool {
	switch s {
	case StatusOnTime, StatusDelayed, StatusCancelled:
		return true
	}
	return false
}

func (t FlightType) Valid() bool {
	return t == FlightDomestic || t == FlightInternational
}

type Flight struct {
	ID                 string       `json:"id"`
	Carrier            string       `json:"carrier"`
	Origin             string       `json:"origin"`
	Destination        string       `json:"destination"`
	Type               FlightType   `json:"type"`
	ScheduledDeparture time.Time    `json:"scheduled_departure"`
	EstimatedDeparture time.Time    `json:"estimated_departure"`
	Status             FlightStatus `json:"status"`
	DelayMinutes       int          `json:"delay_minutes"`
	Gate               string       `json:"gate"`
}

type TrafficRecord struct {
	Month      time.Time `json:"month"`
	Airport    string    `json:"airport"`
	Passengers float64   `json:"passengers"`
	Flights    int       `json:"flights"`
	LoadFactor float64   `json:"load_factor"`
	Region     string    `json:"region"`
}

type ProjectionRecord struct {
	Month      time.Time `json:"month"`
	Airport    string    `json:"airport"`
	Passengers float64   `json:"passengers"`
	GrowthRate float64   `json:"growth_rate"`
}

// Snapshot is a consistent, deep-copied view of the simulation for one render pass.
type Snapshot struct {
	ID          string             `json:"id"`
	Tick        int                `json:"tick"`
	TakenAt     time.Time          `json:"taken_at"`
	Flights     []Flight           `json:"flights"`
	Traffic     []TrafficRecord    `json:"traffic"`
	Projections []ProjectionRecord `json:"projections,omitempty"`
	Carriers    []CarrierActivity  `json:"carriers"`
}
