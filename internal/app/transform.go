package app

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"voyago/internal/domain"
)

// Transforms are deterministic and side-effect free. Provider payloads are
// treated as untyped maps and read through total accessors: any missing or
// mistyped field degrades to a zero value or a documented default, never a
// panic.

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		switch t := v.(type) {
		case string:
			return t
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return ""
}

// lookupFloat: number from several paths (float64/int/string like "8,0").
func lookupFloat(m map[string]any, paths ...string) float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

// lookupInt truncates lookupFloat.
func lookupInt(m map[string]any, paths ...string) int {
	return int(lookupFloat(m, paths...))
}

// lookupMaps returns the []map at path, dropping non-map elements.
func lookupMaps(m map[string]any, path string) []map[string]any {
	raw, ok := lookupAny(m, path).([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, it := range raw {
		if mm, ok := it.(map[string]any); ok {
			out = append(out, mm)
		}
	}
	return out
}

// lookupStrings: accept []any with either strings or {uri/url/href} objects.
func lookupStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		raw, ok := lookupAny(m, k).([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, it := range raw {
			switch t := it.(type) {
			case string:
				if t != "" {
					out = append(out, t)
				}
			case map[string]any:
				for _, key := range []string{"uri", "url", "href"} {
					if u, ok := t[key].(string); ok && u != "" {
						out = append(out, u)
						break
					}
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

/********** durations & enums **********/

// ParseISODuration renders an ISO-8601 duration ("PT2H30M") as "2h 30m".
// Absent hour or minute components count as zero; a missing duration
// renders as an em dash placeholder.
func ParseISODuration(iso string) string {
	if iso == "" {
		return "—"
	}
	s := strings.TrimPrefix(iso, "PT")
	h, m := 0, 0
	if i := strings.IndexByte(s, 'H'); i >= 0 {
		h, _ = strconv.Atoi(s[:i])
		s = s[i+1:]
	}
	if i := strings.IndexByte(s, 'M'); i >= 0 {
		m, _ = strconv.Atoi(s[:i])
	}
	return strconv.Itoa(h) + "h " + strconv.Itoa(m) + "m"
}

var cabinClasses = map[string]domain.CabinClass{
	"ECONOMY":         domain.CabinEconomy,
	"PREMIUM_ECONOMY": domain.CabinPremiumEconomy,
	"BUSINESS":        domain.CabinBusiness,
	"FIRST":           domain.CabinFirst,
}

func mapCabinClass(s string) domain.CabinClass {
	if c, ok := cabinClasses[s]; ok {
		return c
	}
	return domain.CabinEconomy
}

// ResolveAirline turns a carrier code into a display name: the response
// carrier dictionary wins, then the static table, then the code itself.
func ResolveAirline(code string, carriers map[string]string) string {
	if name := carriers[code]; name != "" {
		return name
	}
	if name := airlineNames[code]; name != "" {
		return name
	}
	if code != "" {
		return code
	}
	return "Unknown"
}

// CarrierDictionary pulls the code→name carrier map out of a raw
// flight-offers response, when the provider sent one.
func CarrierDictionary(resp map[string]any) map[string]string {
	raw, ok := lookupAny(resp, "dictionaries.carriers").(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for code, v := range raw {
		if name, ok := v.(string); ok && name != "" {
			out[code] = name
		}
	}
	return out
}

/********** flight offer transform **********/

const (
	defaultCabinBaggage   = "7 kg"
	defaultCheckInBaggage = "15 kg"
)

func mapLeg(itin map[string]any, carriers map[string]string) domain.FlightLeg {
	segs := lookupMaps(itin, "segments")
	leg := domain.FlightLeg{
		Duration: ParseISODuration(lookupStr(itin, "duration")),
	}
	if len(segs) == 0 {
		return leg
	}
	first, last := segs[0], segs[len(segs)-1]
	leg.Stops = len(segs) - 1
	leg.AirlineCode = lookupStr(first, "carrierCode")
	leg.Airline = ResolveAirline(leg.AirlineCode, carriers)
	leg.FlightNumber = leg.AirlineCode + lookupStr(first, "number")
	leg.Origin = lookupStr(first, "departure.iataCode")
	leg.DepartureTime = lookupStr(first, "departure.at")
	leg.Destination = lookupStr(last, "arrival.iataCode")
	leg.ArrivalTime = lookupStr(last, "arrival.at")
	return leg
}

// MapFlightOffer normalizes one raw flight offer. The first itinerary is
// the outbound; a second itinerary becomes the return leg. carriers is the
// provider dictionary from the same response (may be nil).
func MapFlightOffer(raw map[string]any, carriers map[string]string) domain.FlightOffer {
	out := domain.FlightOffer{
		ID:       lookupStr(raw, "id"),
		Source:   lookupStr(raw, "source"),
		Price:    lookupFloat(raw, "price.grandTotal", "price.total"),
		Currency: lookupStr(raw, "price.currency"),
		Baggage:  domain.Baggage{Cabin: defaultCabinBaggage, CheckIn: defaultCheckInBaggage},
	}

	itins := lookupMaps(raw, "itineraries")
	legs := make([]domain.FlightLeg, 0, len(itins))
	for _, it := range itins {
		legs = append(legs, mapLeg(it, carriers))
	}
	out.Itineraries = legs

	if len(legs) > 0 {
		lead := legs[0]
		out.Airline = lead.Airline
		out.AirlineCode = lead.AirlineCode
		out.FlightNumber = lead.FlightNumber
		out.Origin = lead.Origin
		out.Destination = lead.Destination
		out.DepartureTime = lead.DepartureTime
		out.ArrivalTime = lead.ArrivalTime
		out.Duration = lead.Duration
		out.Stops = lead.Stops

		if out.Stops > 0 {
			segs := lookupMaps(itins[0], "segments")
			cities := make([]string, 0, out.Stops)
			for _, seg := range segs[:len(segs)-1] {
				cities = append(cities, lookupStr(seg, "arrival.iataCode"))
			}
			out.StopCities = cities
		}
	} else {
		out.Duration = "—"
	}
	if len(legs) >= 2 {
		ret := legs[1]
		out.ReturnFlight = &ret
	}

	out.SeatsAvailable = lookupInt(raw, "numberOfBookableSeats")

	// cabin and baggage come from the first traveler pricing
	if tps := lookupMaps(raw, "travelerPricings"); len(tps) > 0 {
		if fds := lookupMaps(tps[0], "fareDetailsBySegment"); len(fds) > 0 {
			out.CabinClass = mapCabinClass(lookupStr(fds[0], "cabin"))
			if w := lookupInt(fds[0], "includedCheckedBags.weight"); w > 0 {
				unit := firstNonEmpty(lookupStr(fds[0], "includedCheckedBags.weightUnit"), "KG")
				out.Baggage.CheckIn = strconv.Itoa(w) + " " + strings.ToLower(unit)
			}
		} else {
			out.CabinClass = domain.CabinEconomy
		}
	} else {
		out.CabinClass = domain.CabinEconomy
	}

	// published fares are the non-refundable ones
	out.Refundable = true
	if types, ok := lookupAny(raw, "pricingOptions.fareType").([]any); ok {
		for _, t := range types {
			if s, _ := t.(string); s == "PUBLISHED" {
				out.Refundable = false
			}
		}
	}

	if b, err := json.Marshal(raw); err == nil {
		out.Raw = b
	} else {
		log.Error().Err(err).Str("context", "MapFlightOffer").Msg("marshal raw offer failed")
	}
	return out
}

/********** hotel offer transform **********/

const placeholderHotelImage = "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=800"

// MapHotelOffer normalizes one raw hotel entry. The first offer is the
// representative price; every offer becomes one room record.
func MapHotelOffer(raw map[string]any) domain.HotelOffer {
	out := domain.HotelOffer{
		ID:     lookupStr(raw, "hotel.hotelId"),
		Source: "amadeus",
		Name:   lookupStr(raw, "hotel.name"),
		City:   firstNonEmpty(lookupStr(raw, "hotel.address.cityName"), lookupStr(raw, "hotel.cityCode")),
		Coords: domain.Coords{
			Lat: lookupFloat(raw, "hotel.latitude", "hotel.geoCode.latitude"),
			Lon: lookupFloat(raw, "hotel.longitude", "hotel.geoCode.longitude"),
		},
		Description:  lookupStr(raw, "hotel.description.text"),
		Amenities:    lookupStrings(raw, "hotel.amenities"),
		StarCategory: 3,
	}
	out.Address = strings.Join(lookupStrings(raw, "hotel.address.lines"), ", ")

	if r := lookupFloat(raw, "hotel.rating"); r > 0 {
		out.Rating = r
		stars := int(r)
		if stars < 1 {
			stars = 1
		}
		if stars > 5 {
			stars = 5
		}
		out.StarCategory = stars
	}

	out.Images = lookupStrings(raw, "hotel.media")
	if len(out.Images) == 0 {
		out.Images = []string{placeholderHotelImage}
	}

	offers := lookupMaps(raw, "offers")
	if len(offers) > 0 {
		first := offers[0]
		out.PricePerNight = lookupFloat(first, "price.total")
		out.Currency = lookupStr(first, "price.currency")
		out.FreeCancellation = lookupStr(first, "policies.refundable.cancellationRefund") == "FULL_REFUNDABLE"
	}

	rooms := make([]domain.Room, 0, len(offers))
	for _, o := range offers {
		occupancy := lookupInt(o, "guests.adults")
		if occupancy <= 0 {
			occupancy = 1
		}
		available := lookupInt(o, "roomQuantity")
		if available <= 0 {
			available = 1
		}
		rooms = append(rooms, domain.Room{
			ID:            lookupStr(o, "id"),
			Name:          firstNonEmpty(lookupStr(o, "room.typeEstimated.category"), lookupStr(o, "room.type")),
			Type:          lookupStr(o, "room.type"),
			Description:   lookupStr(o, "room.description.text"),
			PricePerNight: lookupFloat(o, "price.total"),
			MaxOccupancy:  occupancy,
			Available:     available,
		})
	}
	out.Rooms = rooms
	return out
}

/********** location transform **********/

// MapLocation normalizes one raw location record into an autocomplete entry.
func MapLocation(raw map[string]any) domain.Location {
	name := lookupStr(raw, "name")
	iata := lookupStr(raw, "iataCode")
	city := lookupStr(raw, "address.cityName")

	label := name + " (" + iata + ")"
	if city != "" {
		label += " – " + city
	}
	return domain.Location{
		IATACode:    iata,
		Name:        name,
		CityName:    firstNonEmpty(city, name),
		CountryCode: lookupStr(raw, "address.countryCode"),
		SubType:     lookupStr(raw, "subType"),
		Label:       label,
	}
}
