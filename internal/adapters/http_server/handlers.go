// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog/log"

	"voyago/internal/app"
	"voyago/internal/domain"
)

type Handlers struct{ S *app.SearchService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/api", func(r chi.Router) {
		// protect the upstream quota
		r.Use(httprate.LimitByIP(100, 1*time.Minute))
		r.Get("/autocomplete/locations", h.autocompleteLocations)
		r.Get("/flights/search", h.searchFlights)
		r.Post("/flights/multi-city", h.searchMultiCityFlights)
		r.Post("/flights/price", h.priceFlight)
		r.Get("/hotels/search", h.searchHotels)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// Autocomplete always answers 200: short keywords yield an empty live
// result and upstream failures yield filtered fallback data. The source
// field appears only on the degraded branch.
func (h *Handlers) autocompleteLocations(w http.ResponseWriter, r *http.Request) {
	res := h.S.Locations(r.Context(), r.URL.Query().Get("keyword"), r.URL.Query().Get("subType"))

	resp := struct {
		Success   bool              `json:"success"`
		Locations []domain.Location `json:"locations"`
		Source    string            `json:"source,omitempty"`
	}{Success: true, Locations: res.Locations}
	if res.Source == domain.SourceFallback {
		resp.Source = string(res.Source)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) searchFlights(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := domain.FlightQuery{
		Origin:        qs.Get("origin"),
		Destination:   qs.Get("destination"),
		DepartureDate: qs.Get("departureDate"),
		ReturnDate:    qs.Get("returnDate"),
		TravelClass:   qs.Get("travelClass"),
	}
	if q.Origin == "" || q.Destination == "" || q.DepartureDate == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Query", "origin, destination and departureDate are required")
		return
	}
	if a := qs.Get("adults"); a != "" {
		n, err := strconv.Atoi(a)
		if err != nil || n <= 0 || n > 9 {
			writeProblem(w, http.StatusBadRequest, "Invalid Query", "adults must be an integer between 1 and 9")
			return
		}
		q.Adults = n
	}
	if ms := qs.Get("maxStops"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n >= 0 {
			q.MaxStops = &n
		}
	}

	offers, err := h.S.Flights(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Flight Search Failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool                 `json:"success"`
		Count   int                  `json:"count"`
		Flights []domain.FlightOffer `json:"flights"`
	}{true, len(offers), offers})
}

func (h *Handlers) searchMultiCityFlights(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Segments    []domain.FlightSegmentQuery `json:"segments"`
		Adults      int                         `json:"adults"`
		TravelClass string                      `json:"travelClass"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}
	if len(body.Segments) < 2 {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "at least two segments are required")
		return
	}
	for _, seg := range body.Segments {
		if seg.Origin == "" || seg.Destination == "" || seg.Date == "" {
			writeProblem(w, http.StatusBadRequest, "Invalid Body", "every segment needs origin, destination and date")
			return
		}
	}

	offers, err := h.S.MultiCityFlights(r.Context(), domain.MultiCityQuery{
		Segments:    body.Segments,
		Adults:      body.Adults,
		TravelClass: body.TravelClass,
	})
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Flight Search Failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool                 `json:"success"`
		Count   int                  `json:"count"`
		Flights []domain.FlightOffer `json:"flights"`
	}{true, len(offers), offers})
}

func (h *Handlers) priceFlight(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Flight map[string]any `json:"flight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Flight) == 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "flight must carry the raw offer to price")
		return
	}

	pricing, err := h.S.PriceOffer(r.Context(), body.Flight)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Pricing Failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool           `json:"success"`
		Pricing map[string]any `json:"pricing"`
	}{true, pricing})
}

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := domain.HotelQuery{
		CityCode:     qs.Get("cityCode"),
		CheckInDate:  qs.Get("checkInDate"),
		CheckOutDate: qs.Get("checkOutDate"),
	}
	if q.CityCode == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Query", "cityCode is required")
		return
	}
	if a := qs.Get("adults"); a != "" {
		n, err := strconv.Atoi(a)
		if err != nil || n <= 0 || n > 9 {
			writeProblem(w, http.StatusBadRequest, "Invalid Query", "adults must be an integer between 1 and 9")
			return
		}
		q.Adults = n
	}

	hotels, err := h.S.Hotels(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Hotel Search Failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool                `json:"success"`
		Count   int                 `json:"count"`
		Hotels  []domain.HotelOffer `json:"hotels"`
	}{true, len(hotels), hotels})
}
