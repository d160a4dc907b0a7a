package app

import (
	"strings"

	"voyago/internal/domain"
)

// Curated airports served when the upstream location search is down, so
// the autocomplete widget never hard-fails. Major Indian hubs plus the
// international destinations the storefront sells most.
var fallbackAirports = buildFallbackAirports([]fallbackAirport{
	{"DEL", "Indira Gandhi International Airport", "New Delhi", "IN"},
	{"BOM", "Chhatrapati Shivaji Maharaj International Airport", "Mumbai", "IN"},
	{"BLR", "Kempegowda International Airport", "Bengaluru", "IN"},
	{"MAA", "Chennai International Airport", "Chennai", "IN"},
	{"CCU", "Netaji Subhas Chandra Bose International Airport", "Kolkata", "IN"},
	{"HYD", "Rajiv Gandhi International Airport", "Hyderabad", "IN"},
	{"COK", "Cochin International Airport", "Kochi", "IN"},
	{"GOI", "Goa International Airport", "Goa", "IN"},
	{"AMD", "Sardar Vallabhbhai Patel International Airport", "Ahmedabad", "IN"},
	{"PNQ", "Pune Airport", "Pune", "IN"},
	{"DXB", "Dubai International Airport", "Dubai", "AE"},
	{"SIN", "Singapore Changi Airport", "Singapore", "SG"},
	{"LHR", "Heathrow Airport", "London", "GB"},
	{"JFK", "John F. Kennedy International Airport", "New York", "US"},
	{"CDG", "Charles de Gaulle Airport", "Paris", "FR"},
	{"FRA", "Frankfurt Airport", "Frankfurt", "DE"},
	{"BKK", "Suvarnabhumi Airport", "Bangkok", "TH"},
	{"KUL", "Kuala Lumpur International Airport", "Kuala Lumpur", "MY"},
})

type fallbackAirport struct {
	iata, name, city, country string
}

func buildFallbackAirports(in []fallbackAirport) []domain.Location {
	out := make([]domain.Location, 0, len(in))
	for _, a := range in {
		out = append(out, domain.Location{
			IATACode:    a.iata,
			Name:        a.name,
			CityName:    a.city,
			CountryCode: a.country,
			SubType:     "AIRPORT",
			Label:       a.name + " (" + a.iata + ") – " + a.city,
		})
	}
	return out
}

// FilterFallbackLocations returns the static airports whose IATA code,
// name, or city contains the keyword, case-insensitively.
func FilterFallbackLocations(keyword string) []domain.Location {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	out := make([]domain.Location, 0, 4)
	if kw == "" {
		return out
	}
	for _, loc := range fallbackAirports {
		if strings.Contains(strings.ToLower(loc.IATACode), kw) ||
			strings.Contains(strings.ToLower(loc.Name), kw) ||
			strings.Contains(strings.ToLower(loc.CityName), kw) {
			out = append(out, loc)
		}
	}
	return out
}
