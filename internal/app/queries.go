package app

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"voyago/internal/adapters/observability"
	"voyago/internal/domain"
)

// SearchService orchestrates upstream calls and normalization. It is
// stateless between calls; the cache is the only thing shared across
// requests and it never holds fallback data.
type SearchService struct {
	client domain.TravelClient
	cache  domain.Cache
	ttl    time.Duration
}

func NewSearchService(c domain.TravelClient, cache domain.Cache, ttl time.Duration) *SearchService {
	return &SearchService{client: c, cache: cache, ttl: ttl}
}

const minKeywordRunes = 2

// Locations never fails: short keywords short-circuit to an empty live
// result, and an upstream failure degrades to the static airport table.
func (s *SearchService) Locations(ctx context.Context, keyword, subType string) domain.LocationResult {
	keyword = strings.TrimSpace(keyword)
	if utf8.RuneCountInString(keyword) < minKeywordRunes {
		return domain.LocationResult{Locations: []domain.Location{}, Source: domain.SourceLive}
	}
	if subType == "" {
		subType = "AIRPORT,CITY"
	}

	key := fmt.Sprintf("loc:%s:%s", strings.ToLower(keyword), subType)
	cached := []domain.Location{}
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return domain.LocationResult{Locations: cached, Source: domain.SourceLive}
	}

	resp, err := s.client.SearchLocations(ctx, keyword, subType)
	if err != nil {
		observability.ObserveFallback("locations")
		log.Warn().Err(err).Str("keyword", keyword).Msg("location search degraded to fallback")
		return domain.LocationResult{
			Locations: FilterFallbackLocations(keyword),
			Source:    domain.SourceFallback,
		}
	}

	locs := make([]domain.Location, 0)
	for _, raw := range lookupMaps(resp, "data") {
		locs = append(locs, MapLocation(raw))
	}
	_ = s.cache.Set(ctx, key, locs, int(s.ttl.Seconds()))
	return domain.LocationResult{Locations: locs, Source: domain.SourceLive}
}

func (s *SearchService) Flights(ctx context.Context, q domain.FlightQuery) ([]domain.FlightOffer, error) {
	resp, err := s.client.SearchFlightOffers(ctx, q)
	if err != nil {
		return nil, err
	}
	return mapFlightOffers(resp), nil
}

func (s *SearchService) MultiCityFlights(ctx context.Context, q domain.MultiCityQuery) ([]domain.FlightOffer, error) {
	resp, err := s.client.SearchMultiCityFlightOffers(ctx, q)
	if err != nil {
		return nil, err
	}
	return mapFlightOffers(resp), nil
}

// PriceOffer confirms the live price of a previously returned raw offer.
// The pricing payload is passed through untransformed.
func (s *SearchService) PriceOffer(ctx context.Context, offer map[string]any) (map[string]any, error) {
	return s.client.PriceFlightOffer(ctx, offer)
}

func mapFlightOffers(resp map[string]any) []domain.FlightOffer {
	carriers := CarrierDictionary(resp)
	offers := make([]domain.FlightOffer, 0)
	for _, raw := range lookupMaps(resp, "data") {
		offers = append(offers, MapFlightOffer(raw, carriers))
	}
	return offers
}

// maxHotelIDs caps how many properties one availability search covers.
const maxHotelIDs = 40

func (s *SearchService) Hotels(ctx context.Context, q domain.HotelQuery) ([]domain.HotelOffer, error) {
	ids, err := s.hotelIDs(ctx, q.CityCode)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.HotelOffer{}, nil
	}
	if len(ids) > maxHotelIDs {
		ids = ids[:maxHotelIDs]
	}

	resp, err := s.client.GetHotelOffers(ctx, ids, q)
	if err != nil {
		return nil, err
	}
	hotels := make([]domain.HotelOffer, 0)
	for _, raw := range lookupMaps(resp, "data") {
		hotels = append(hotels, MapHotelOffer(raw))
	}
	return hotels, nil
}

// hotelIDs resolves a city to its hotel ids, cache-aside: the list is
// stable enough to outlive any availability answer.
func (s *SearchService) hotelIDs(ctx context.Context, cityCode string) ([]string, error) {
	key := "hotelids:" + strings.ToUpper(cityCode)
	ids := []string{}
	if ok, _ := s.cache.Get(ctx, key, &ids); ok {
		return ids, nil
	}

	resp, err := s.client.SearchHotelsByCity(ctx, cityCode)
	if err != nil {
		return nil, err
	}
	for _, raw := range lookupMaps(resp, "data") {
		if id := lookupStr(raw, "hotelId"); id != "" {
			ids = append(ids, id)
		}
	}
	_ = s.cache.Set(ctx, key, ids, int(s.ttl.Seconds()))
	return ids, nil
}
