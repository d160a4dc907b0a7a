// internal/adapters/amadeus/client.go
package amadeus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"voyago/internal/adapters/observability"
	"voyago/internal/domain"
)

// Client wraps the Amadeus self-service REST APIs. It builds queries and
// decodes responses but never retries and never reinterprets payloads;
// a failed call fails once and the error is the caller's problem.
type Client struct {
	base   string
	id     string
	secret string
	hc     *http.Client
	rl     *rate.Limiter
	sem    *semaphore.Weighted

	sf     singleflight.Group
	mu     sync.Mutex
	token  string
	expiry time.Time
}

func New(base, id, secret string, rps, hotelWorkers int) (*Client, error) {
	if id == "" || secret == "" {
		return nil, fmt.Errorf("amadeus client id and secret are required")
	}
	if rps <= 0 {
		rps = 5
	}
	if hotelWorkers <= 0 {
		hotelWorkers = 3
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		id:     id,
		secret: secret,
		hc:     &http.Client{Timeout: 20 * time.Second},
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
		sem:    semaphore.NewWeighted(int64(hotelWorkers)),
	}, nil
}

var _ domain.TravelClient = (*Client)(nil)

// ---- Public API ----

func (c *Client) SearchFlightOffers(ctx context.Context, q domain.FlightQuery) (map[string]any, error) {
	adults := q.Adults
	if adults <= 0 {
		adults = 1
	}
	max := q.Max
	if max <= 0 {
		max = 50
	}
	v := url.Values{}
	v.Set("originLocationCode", q.Origin)
	v.Set("destinationLocationCode", q.Destination)
	v.Set("departureDate", q.DepartureDate)
	v.Set("adults", strconv.Itoa(adults))
	v.Set("max", strconv.Itoa(max))
	// optional fields are omitted entirely, never sent empty
	if q.ReturnDate != "" {
		v.Set("returnDate", q.ReturnDate)
	}
	if q.TravelClass != "" {
		v.Set("travelClass", q.TravelClass)
	}
	if q.MaxStops != nil && *q.MaxStops == 0 {
		v.Set("nonStop", "true")
	}

	var out map[string]any
	return out, c.get(ctx, "/v2/shopping/flight-offers", v, "flight-offers", &out)
}

func (c *Client) SearchMultiCityFlightOffers(ctx context.Context, q domain.MultiCityQuery) (map[string]any, error) {
	adults := q.Adults
	if adults <= 0 {
		adults = 1
	}

	ods := make([]map[string]any, 0, len(q.Segments))
	odIDs := make([]string, 0, len(q.Segments))
	for i, s := range q.Segments {
		id := strconv.Itoa(i + 1)
		odIDs = append(odIDs, id)
		ods = append(ods, map[string]any{
			"id":                      id,
			"originLocationCode":      s.Origin,
			"destinationLocationCode": s.Destination,
			"departureDateTimeRange":  map[string]any{"date": s.Date},
		})
	}
	travelers := make([]map[string]any, 0, adults)
	for i := 0; i < adults; i++ {
		travelers = append(travelers, map[string]any{
			"id":           strconv.Itoa(i + 1),
			"travelerType": "ADULT",
		})
	}
	criteria := map[string]any{"maxFlightOffers": 50}
	if q.TravelClass != "" {
		criteria["flightFilters"] = map[string]any{
			"cabinRestrictions": []map[string]any{{
				"cabin":                q.TravelClass,
				"coverage":             "MOST_SEGMENTS",
				"originDestinationIds": odIDs,
			}},
		}
	}
	body := map[string]any{
		"originDestinations": ods,
		"travelers":          travelers,
		"sources":            []string{"GDS"},
		"searchCriteria":     criteria,
	}

	var out map[string]any
	return out, c.post(ctx, "/v2/shopping/flight-offers", body, "flight-offers-multi", &out)
}

func (c *Client) PriceFlightOffer(ctx context.Context, offer map[string]any) (map[string]any, error) {
	body := map[string]any{
		"data": map[string]any{
			"type":         "flight-offers-pricing",
			"flightOffers": []map[string]any{offer},
		},
	}
	var out map[string]any
	return out, c.post(ctx, "/v1/shopping/flight-offers/pricing", body, "flight-offers-pricing", &out)
}

func (c *Client) SearchHotelsByCity(ctx context.Context, cityCode string) (map[string]any, error) {
	v := url.Values{}
	v.Set("cityCode", cityCode)
	v.Set("radius", "5")
	v.Set("radiusUnit", "KM")
	v.Set("hotelSource", "ALL")

	var out map[string]any
	return out, c.get(ctx, "/v1/reference-data/locations/hotels/by-city", v, "hotels-by-city", &out)
}

// hotelIDsPerRequest caps how many hotel ids one offers request may carry;
// larger lists are fetched in concurrent batches under the client semaphore.
const hotelIDsPerRequest = 20

func (c *Client) GetHotelOffers(ctx context.Context, hotelIDs []string, q domain.HotelQuery) (map[string]any, error) {
	ids := hotelIDs
	if len(ids) == 0 {
		return map[string]any{"data": []any{}}, nil
	}
	if len(ids) <= hotelIDsPerRequest {
		return c.hotelOffersBatch(ctx, ids, q)
	}

	// Batch fan-out, bounded by the semaphore. Any batch failure fails the
	// whole call; partial availability would read as "city has few hotels".
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		merged   []any
		firstErr error
	)
	for start := 0; start < len(ids); start += hotelIDsPerRequest {
		end := start + hotelIDsPerRequest
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		if err := c.sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			break
		}
		wg.Add(1)
		go func(batch []string) {
			defer wg.Done()
			defer c.sem.Release(1)

			out, err := c.hotelOffersBatch(ctx, batch, q)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				return
			}
			if data, ok := out["data"].([]any); ok {
				merged = append(merged, data...)
			}
		}(batch)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return map[string]any{"data": merged}, nil
}

func (c *Client) hotelOffersBatch(ctx context.Context, ids []string, q domain.HotelQuery) (map[string]any, error) {
	adults := q.Adults
	if adults <= 0 {
		adults = 1
	}
	v := url.Values{}
	v.Set("hotelIds", strings.Join(ids, ","))
	v.Set("adults", strconv.Itoa(adults))
	if q.CheckInDate != "" {
		v.Set("checkInDate", q.CheckInDate)
	}
	if q.CheckOutDate != "" {
		v.Set("checkOutDate", q.CheckOutDate)
	}

	var out map[string]any
	return out, c.get(ctx, "/v3/shopping/hotel-offers", v, "hotel-offers", &out)
}

func (c *Client) SearchLocations(ctx context.Context, keyword, subType string) (map[string]any, error) {
	if subType == "" {
		subType = "AIRPORT,CITY"
	}
	v := url.Values{}
	v.Set("keyword", keyword)
	v.Set("subType", subType)

	var out map[string]any
	return out, c.get(ctx, "/v1/reference-data/locations", v, "locations", &out)
}

// ---- OAuth2 ----

func (c *Client) bearer(ctx context.Context) (string, error) {
	c.mu.Lock()
	tok, fresh := c.token, time.Now().Before(c.expiry)
	c.mu.Unlock()
	if fresh && tok != "" {
		return tok, nil
	}
	// collapse concurrent refreshes into one token request
	v, err, _ := c.sf.Do("token", func() (any, error) {
		return c.refreshToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) refreshToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.id)
	form.Set("client_secret", c.secret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.base+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("amadeus", "oauth-token", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("%w: %s", ErrUnauthorized, strings.TrimSpace(string(b)))
		}
		return "", fmt.Errorf("token request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", errors.New("token response missing access_token")
	}

	// renew 30s before the provider-reported expiry; the floor keeps very
	// short-lived tokens cached instead of forcing a refresh per call
	ttl := time.Duration(tr.ExpiresIn-30) * time.Second
	if ttl < 30*time.Second {
		ttl = 30 * time.Second
	}
	c.mu.Lock()
	c.token = tr.AccessToken
	c.expiry = time.Now().Add(ttl)
	c.mu.Unlock()
	return tr.AccessToken, nil
}

// ---- Internals ----

var (
	ErrNotFound     = errors.New("amadeus: not found")
	ErrUnauthorized = errors.New("amadeus: unauthorized")
	ErrRateLimited  = errors.New("amadeus: rate limited")
)

func (c *Client) get(ctx context.Context, path string, query url.Values, endpoint string, out any) error {
	return c.call(ctx, http.MethodGet, path+"?"+query.Encode(), nil, endpoint, out)
}

func (c *Client) post(ctx context.Context, path string, body any, endpoint string, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, path, b, endpoint, out)
}

func (c *Client) call(ctx context.Context, method, pathAndQuery string, body []byte, endpoint string, out any) error {
	// client-side rate limiting protects the upstream quota
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	tok, err := c.bearer(ctx)
	if err != nil {
		return err
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+pathAndQuery, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("amadeus", endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusNoContent:
		io.Copy(io.Discard, resp.Body)
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("amadeus %s: bad status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(b)))
	}
}
