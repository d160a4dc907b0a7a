package app_test

import (
	"encoding/json"
	"testing"

	"voyago/internal/app"
	"voyago/internal/domain"
)

func mustMap(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return m
}

const roundTripOffer = `{
  "id": "1",
  "source": "GDS",
  "numberOfBookableSeats": 4,
  "itineraries": [
    {
      "duration": "PT5H10M",
      "segments": [
        {"departure": {"iataCode": "DEL", "at": "2026-09-10T06:00:00"},
         "arrival":   {"iataCode": "DXB", "at": "2026-09-10T08:30:00"},
         "carrierCode": "AI", "number": "995"},
        {"departure": {"iataCode": "DXB", "at": "2026-09-10T09:40:00"},
         "arrival":   {"iataCode": "LHR", "at": "2026-09-10T13:10:00"},
         "carrierCode": "AI", "number": "131"}
      ]
    },
    {
      "duration": "PT8H45M",
      "segments": [
        {"departure": {"iataCode": "LHR", "at": "2026-09-20T10:00:00"},
         "arrival":   {"iataCode": "DEL", "at": "2026-09-20T22:45:00"},
         "carrierCode": "BA", "number": "257"}
      ]
    }
  ],
  "price": {"grandTotal": "642.80", "currency": "USD"},
  "pricingOptions": {"fareType": ["PUBLISHED"]},
  "travelerPricings": [
    {"fareDetailsBySegment": [
      {"cabin": "BUSINESS",
       "includedCheckedBags": {"weight": 25, "weightUnit": "KG"}}
    ]}
  ]
}`

func TestMapFlightOffer_RoundTrip(t *testing.T) {
	f := app.MapFlightOffer(mustMap(t, roundTripOffer), nil)

	if f.ID != "1" || f.Source != "GDS" {
		t.Fatalf("id/source: %+v", f)
	}
	if len(f.Itineraries) != 2 {
		t.Fatalf("itineraries: want 2, got %d", len(f.Itineraries))
	}
	if f.ReturnFlight == nil {
		t.Fatal("expected return flight for two itineraries")
	}
	if f.Stops != 1 {
		t.Fatalf("stops: want 1, got %d", f.Stops)
	}
	if len(f.StopCities) != 1 || f.StopCities[0] != "DXB" {
		t.Fatalf("stop cities: %v", f.StopCities)
	}
	if f.Origin != "DEL" || f.Destination != "LHR" {
		t.Fatalf("route: %s-%s", f.Origin, f.Destination)
	}
	if f.FlightNumber != "AI995" {
		t.Fatalf("flight number: %s", f.FlightNumber)
	}
	if f.Airline != "Air India" {
		t.Fatalf("airline: %s", f.Airline)
	}
	if f.Duration != "5h 10m" {
		t.Fatalf("duration: %s", f.Duration)
	}
	if f.Price != 642.80 || f.Currency != "USD" {
		t.Fatalf("price: %v %s", f.Price, f.Currency)
	}
	if f.SeatsAvailable != 4 {
		t.Fatalf("seats: %d", f.SeatsAvailable)
	}
	if f.CabinClass != domain.CabinBusiness {
		t.Fatalf("cabin: %s", f.CabinClass)
	}
	if f.Baggage.CheckIn != "25 kg" || f.Baggage.Cabin != "7 kg" {
		t.Fatalf("baggage: %+v", f.Baggage)
	}
	if f.Refundable {
		t.Fatal("PUBLISHED fare must not be refundable")
	}

	ret := f.ReturnFlight
	if ret.Origin != "LHR" || ret.Destination != "DEL" || ret.Stops != 0 {
		t.Fatalf("return leg: %+v", ret)
	}
	if ret.Duration != "8h 45m" {
		t.Fatalf("return duration: %s", ret.Duration)
	}
	if ret.Airline != "British Airways" {
		t.Fatalf("return airline: %s", ret.Airline)
	}
	if len(f.Raw) == 0 {
		t.Fatal("raw offer must be retained")
	}
}

func TestMapFlightOffer_EmptyOfferDoesNotPanic(t *testing.T) {
	f := app.MapFlightOffer(map[string]any{}, nil)

	if f.Duration != "—" {
		t.Fatalf("duration placeholder: %q", f.Duration)
	}
	if f.CabinClass != domain.CabinEconomy {
		t.Fatalf("cabin default: %s", f.CabinClass)
	}
	if f.Baggage.Cabin != "7 kg" || f.Baggage.CheckIn != "15 kg" {
		t.Fatalf("baggage defaults: %+v", f.Baggage)
	}
	if f.ReturnFlight != nil {
		t.Fatal("no return flight expected")
	}
	if !f.Refundable {
		t.Fatal("offer without fare type defaults to refundable")
	}
	if f.Stops != 0 || len(f.StopCities) != 0 {
		t.Fatalf("stops: %d %v", f.Stops, f.StopCities)
	}
}

func TestMapFlightOffer_CarrierDictionaryWins(t *testing.T) {
	raw := mustMap(t, roundTripOffer)
	f := app.MapFlightOffer(raw, map[string]string{"AI": "AIR INDIA LTD"})
	if f.Airline != "AIR INDIA LTD" {
		t.Fatalf("dictionary should win: %s", f.Airline)
	}
}

func TestMapFlightOffer_CabinMapping(t *testing.T) {
	cases := map[string]domain.CabinClass{
		"ECONOMY":         domain.CabinEconomy,
		"PREMIUM_ECONOMY": domain.CabinPremiumEconomy,
		"BUSINESS":        domain.CabinBusiness,
		"FIRST":           domain.CabinFirst,
		"SLEEPER_POD":     domain.CabinEconomy,
		"":                domain.CabinEconomy,
	}
	for in, want := range cases {
		raw := map[string]any{
			"travelerPricings": []any{
				map[string]any{"fareDetailsBySegment": []any{
					map[string]any{"cabin": in},
				}},
			},
		}
		if got := app.MapFlightOffer(raw, nil).CabinClass; got != want {
			t.Errorf("cabin %q: want %s, got %s", in, want, got)
		}
	}
}

func TestParseISODuration(t *testing.T) {
	cases := map[string]string{
		"PT2H30M": "2h 30m",
		"PT45M":   "0h 45m",
		"PT2H":    "2h 0m",
		"PT11H5M": "11h 5m",
		"":        "—",
	}
	for in, want := range cases {
		if got := app.ParseISODuration(in); got != want {
			t.Errorf("ParseISODuration(%q): want %q, got %q", in, want, got)
		}
	}
}

func TestResolveAirline_Total(t *testing.T) {
	if got := app.ResolveAirline("6E", nil); got != "IndiGo" {
		t.Fatalf("static table: %s", got)
	}
	if got := app.ResolveAirline("ZZ", nil); got != "ZZ" {
		t.Fatalf("unknown code falls back to itself: %s", got)
	}
	if got := app.ResolveAirline("ZZ", map[string]string{"ZZ": "Zed Air"}); got != "Zed Air" {
		t.Fatalf("dictionary: %s", got)
	}
	for _, code := range []string{"", "AI", "??", "long-code"} {
		if app.ResolveAirline(code, nil) == "" {
			t.Errorf("ResolveAirline(%q) returned empty", code)
		}
	}
}

const hotelWithOffers = `{
  "hotel": {
    "hotelId": "HIDEL001",
    "name": "The Grand New Delhi",
    "cityCode": "DEL",
    "rating": "4.7",
    "address": {"cityName": "New Delhi", "lines": ["Nelson Mandela Road", "Vasant Kunj"]},
    "geoCode": {"latitude": 28.54, "longitude": 77.12},
    "amenities": ["SPA", "POOL"],
    "media": [{"uri": "https://img.example/1.jpg"}]
  },
  "offers": [
    {"id": "OF1",
     "room": {"type": "DLX", "typeEstimated": {"category": "DELUXE_ROOM"}, "description": {"text": "Deluxe king"}},
     "guests": {"adults": 2},
     "price": {"total": "9400.00", "currency": "INR"},
     "policies": {"refundable": {"cancellationRefund": "FULL_REFUNDABLE"}}},
    {"id": "OF2",
     "room": {"type": "STD"},
     "price": {"total": "7100.00", "currency": "INR"}}
  ]
}`

func TestMapHotelOffer(t *testing.T) {
	h := app.MapHotelOffer(mustMap(t, hotelWithOffers))

	if h.ID != "HIDEL001" || h.Name != "The Grand New Delhi" {
		t.Fatalf("identity: %+v", h)
	}
	if h.City != "New Delhi" {
		t.Fatalf("city: %s", h.City)
	}
	if h.Address != "Nelson Mandela Road, Vasant Kunj" {
		t.Fatalf("address: %s", h.Address)
	}
	if h.Rating != 4.7 || h.StarCategory != 4 {
		t.Fatalf("rating: %v stars %d", h.Rating, h.StarCategory)
	}
	if h.PricePerNight != 9400 || h.Currency != "INR" {
		t.Fatalf("price: %v %s", h.PricePerNight, h.Currency)
	}
	if !h.FreeCancellation {
		t.Fatal("first offer is fully refundable")
	}
	if len(h.Rooms) != 2 {
		t.Fatalf("rooms: want one per offer, got %d", len(h.Rooms))
	}
	if h.Rooms[0].Name != "DELUXE_ROOM" || h.Rooms[0].MaxOccupancy != 2 {
		t.Fatalf("room 0: %+v", h.Rooms[0])
	}
	if h.Rooms[1].Name != "STD" {
		t.Fatalf("room name falls back to type: %+v", h.Rooms[1])
	}
	if len(h.Images) != 1 || h.Images[0] != "https://img.example/1.jpg" {
		t.Fatalf("images: %v", h.Images)
	}
	if h.Coords.Lat != 28.54 || h.Coords.Lon != 77.12 {
		t.Fatalf("coords: %+v", h.Coords)
	}
}

func TestMapHotelOffer_NoOffers(t *testing.T) {
	h := app.MapHotelOffer(mustMap(t, `{"hotel": {"hotelId": "H2", "name": "Bare"}}`))

	if h.PricePerNight != 0 {
		t.Fatalf("price: %v", h.PricePerNight)
	}
	if h.Rooms == nil || len(h.Rooms) != 0 {
		t.Fatalf("rooms must be an empty list: %v", h.Rooms)
	}
	if h.StarCategory != 3 {
		t.Fatalf("default stars: %d", h.StarCategory)
	}
	if len(h.Images) != 1 || h.Images[0] == "" {
		t.Fatalf("placeholder image expected: %v", h.Images)
	}
	if h.FreeCancellation {
		t.Fatal("no offers means no free cancellation")
	}
}

func TestMapLocation(t *testing.T) {
	loc := app.MapLocation(mustMap(t, `{
	  "iataCode": "BOM", "name": "Chhatrapati Shivaji Intl", "subType": "AIRPORT",
	  "address": {"cityName": "Mumbai", "countryCode": "IN"}
	}`))
	if loc.Label != "Chhatrapati Shivaji Intl (BOM) – Mumbai" {
		t.Fatalf("label: %q", loc.Label)
	}
	if loc.CityName != "Mumbai" || loc.CountryCode != "IN" || loc.SubType != "AIRPORT" {
		t.Fatalf("fields: %+v", loc)
	}
}

func TestMapLocation_NoCity(t *testing.T) {
	loc := app.MapLocation(mustMap(t, `{"iataCode": "SIN", "name": "Changi", "subType": "AIRPORT"}`))
	if loc.Label != "Changi (SIN)" {
		t.Fatalf("label without city: %q", loc.Label)
	}
	if loc.CityName != "Changi" {
		t.Fatalf("city name falls back to location name: %q", loc.CityName)
	}
}
