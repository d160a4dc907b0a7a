package domain

type Room struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	PricePerNight float64 `json:"pricePerNight"`
	MaxOccupancy  int     `json:"maxOccupancy"`
	Available     int     `json:"available"`
}

type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type HotelOffer struct {
	ID      string  `json:"id"`
	Source  string  `json:"source"`
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating"`
	// StarCategory is the rating truncated to an integer, default 3.
	StarCategory     int      `json:"starCategory"`
	Amenities        []string `json:"amenities,omitempty"`
	Images           []string `json:"images"`
	Coords           Coords   `json:"coords"`
	Description      string   `json:"description"`
	PricePerNight    float64  `json:"pricePerNight"`
	Currency         string   `json:"currency"`
	FreeCancellation bool     `json:"freeCancellation"`
	Rooms            []Room   `json:"rooms"`
}

// HotelQuery parameterizes availability search for one city.
// Empty date fields are omitted from the upstream query.
type HotelQuery struct {
	CityCode     string
	CheckInDate  string
	CheckOutDate string
	Adults       int
}
