package domain

// Location is one autocomplete match: an airport or a city.
type Location struct {
	IATACode    string `json:"iataCode"`
	Name        string `json:"name"`
	CityName    string `json:"cityName"`
	CountryCode string `json:"countryCode"`
	SubType     string `json:"subType"`
	Label       string `json:"label"`
}

// Source tags where a result set came from, so callers and tests can tell
// a degraded response apart from a live one.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

type LocationResult struct {
	Locations []Location
	Source    Source
}
