package domain

import "context"

// TravelClient is the upstream provider wrapper. It issues well-formed
// queries and hands back raw decoded payloads without interpreting them;
// transport and auth failures surface as-is to the caller.
type TravelClient interface {
	SearchFlightOffers(ctx context.Context, q FlightQuery) (map[string]any, error)
	SearchMultiCityFlightOffers(ctx context.Context, q MultiCityQuery) (map[string]any, error)
	PriceFlightOffer(ctx context.Context, offer map[string]any) (map[string]any, error)
	SearchHotelsByCity(ctx context.Context, cityCode string) (map[string]any, error)
	GetHotelOffers(ctx context.Context, hotelIDs []string, q HotelQuery) (map[string]any, error)
	SearchLocations(ctx context.Context, keyword, subType string) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
