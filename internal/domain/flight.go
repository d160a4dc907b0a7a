package domain

// CabinClass is the normalized cabin enum. Unknown upstream values map to economy.
type CabinClass string

const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

type Baggage struct {
	Cabin   string `json:"cabin"`
	CheckIn string `json:"checkIn"`
}

// FlightLeg is one itinerary of an offer: the outbound, the return leg,
// or one hop of a multi-city trip. Price belongs to the offer, never the leg.
type FlightLeg struct {
	Airline       string `json:"airline"`
	AirlineCode   string `json:"airlineCode"`
	FlightNumber  string `json:"flightNumber"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	Duration      string `json:"duration"`
	Stops         int    `json:"stops"`
}

type FlightOffer struct {
	ID             string     `json:"id"`
	Source         string     `json:"source"`
	Airline        string     `json:"airline"`
	AirlineCode    string     `json:"airlineCode"`
	FlightNumber   string     `json:"flightNumber"`
	Origin         string     `json:"origin"`
	Destination    string     `json:"destination"`
	DepartureTime  string     `json:"departureTime"`
	ArrivalTime    string     `json:"arrivalTime"`
	Duration       string     `json:"duration"`
	Price          float64    `json:"price"`
	Currency       string     `json:"currency"`
	CabinClass     CabinClass `json:"cabinClass"`
	SeatsAvailable int        `json:"seatsAvailable"`
	Stops          int        `json:"stops"`
	StopCities     []string   `json:"stopCities,omitempty"`
	Baggage        Baggage    `json:"baggage"`
	Refundable     bool       `json:"refundable"`
	// ReturnFlight is set only when the raw offer carries a second itinerary.
	ReturnFlight *FlightLeg `json:"returnFlight,omitempty"`
	// Itineraries always has one entry per raw itinerary, so multi-city
	// renders through the same shape as one-way and round-trip.
	Itineraries []FlightLeg `json:"itineraries"`
	// Raw keeps the provider offer for later re-pricing. Internal only.
	Raw []byte `json:"-"`
}

// FlightQuery parameterizes a one-way or round-trip offer search.
// Zero-valued optional fields are omitted from the upstream query entirely.
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	TravelClass   string
	// MaxStops distinguishes "nonstop only" (0) from "no preference" (nil).
	MaxStops *int
	Max      int
}

type FlightSegmentQuery struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

type MultiCityQuery struct {
	Segments    []FlightSegmentQuery
	Adults      int
	TravelClass string
}
