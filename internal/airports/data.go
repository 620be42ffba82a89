package airports

import "airport_traffic/internal/models"

var defaultAirports = []models.Airport{
	{
		Code: "CDG", Name: "Paris Charles de Gaulle", City: "Paris", Region: "Île-de-France",
		Capacity: 80_000_000, Runways: 4, Terminals: 3,
		Latitude: 49.0097, Longitude: 2.5479, Color: "#0055A4",
	},
	{
		Code: "ORY", Name: "Paris Orly", City: "Paris", Region: "Île-de-France",
		Capacity: 33_000_000, Runways: 3, Terminals: 4,
		Latitude: 48.7233, Longitude: 2.3794, Color: "#EF4135",
	},
	{
		Code: "NCE", Name: "Nice Côte d'Azur", City: "Nice", Region: "Provence-Alpes-Côte d'Azur",
		Capacity: 14_500_000, Runways: 2, Terminals: 2,
		Latitude: 43.6584, Longitude: 7.2159, Color: "#00A3E0",
	},
	{
		Code: "LYS", Name: "Lyon-Saint Exupéry", City: "Lyon", Region: "Auvergne-Rhône-Alpes",
		Capacity: 12_000_000, Runways: 2, Terminals: 2,
		Latitude: 45.7256, Longitude: 5.0811, Color: "#FF6B00",
	},
	{
		Code: "MRS", Name: "Marseille Provence", City: "Marseille", Region: "Provence-Alpes-Côte d'Azur",
		Capacity: 10_200_000, Runways: 2, Terminals: 2,
		Latitude: 43.4356, Longitude: 5.2136, Color: "#009900",
	},
	{
		Code: "TLS", Name: "Toulouse-Blagnac", City: "Toulouse", Region: "Occitanie",
		Capacity: 9_600_000, Runways: 2, Terminals: 2,
		Latitude: 43.6291, Longitude: 1.3638, Color: "#660099",
	},
	{
		Code: "BOD", Name: "Bordeaux-Mérignac", City: "Bordeaux", Region: "Nouvelle-Aquitaine",
		Capacity: 7_500_000, Runways: 2, Terminals: 2,
		Latitude: 44.8283, Longitude: -0.7156, Color: "#FFCC00",
	},
}

// Domestic destinations include regional airports that are not part of the
// registry itself.
var domesticPool = []string{"CDG", "ORY", "NCE", "LYS", "MRS", "TLS", "BOD", "NTE", "LIL", "BSL"}

var internationalPool = []string{"LHR", "AMS", "FRA", "BCN", "MAD", "FCO", "IST", "DXB", "JFK", "CDG"}

// DefaultCarriers is the market table. The trailing "Others" row groups the
// remaining carriers; it has no designator and operates no flights.
func DefaultCarriers() []models.Carrier {
	return []models.Carrier{
		{Name: "Air France", Designator: "AF", Country: "France", MarketShare: 45, Color: "#0055A4"},
		{Name: "EasyJet", Designator: "U2", Country: "United Kingdom", MarketShare: 18, Color: "#FF6600"},
		{Name: "Ryanair", Designator: "FR", Country: "Ireland", MarketShare: 15, Color: "#FFCC00"},
		{Name: "Transavia", Designator: "TO", Country: "France", MarketShare: 8, Color: "#EF4135"},
		{Name: "Air France Hop", Designator: "A5", Country: "France", MarketShare: 6, Color: "#00A3E0"},
		{Name: "British Airways", Designator: "BA", Country: "United Kingdom", MarketShare: 3, Color: "#660099"},
		{Name: "Lufthansa", Designator: "LH", Country: "Germany", MarketShare: 2, Color: "#FF0000"},
		{Name: "Iberia", Designator: "IB", Country: "Spain", MarketShare: 0, Color: "#D7192D"},
		{Name: "Others", Country: "Various", MarketShare: 3, Color: "#999999"},
	}
}
