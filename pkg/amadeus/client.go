package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"routewise/pkg/logger"
	"routewise/pkg/ratelimit"
)

const (
	authPath         = "/v1/security/oauth2/token"
	destinationsPath = "/v1/shopping/flight-destinations"
	offersPath       = "/v2/shopping/flight-offers"
)

// Client talks to the Amadeus shopping APIs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *ratelimit.EndpointLimiter
	logger     logger.Client
}

func NewClient(httpClient *http.Client, baseURL string, limiter *ratelimit.EndpointLimiter, logger logger.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		limiter:    limiter,
		logger:     logger,
	}
}

// OffersQuery is one cell of the search grid.
type OffersQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string // empty for one-way
	Adults        int
	Max           int
	MaxPrice      *int
}

// Destinations returns the candidate destination codes reachable from origin.
// Unlike Offers, an upstream failure here is an error: destination discovery
// is the foundation of an origin-only search and cannot be absorbed.
func (c *Client) Destinations(ctx context.Context, origin, token string) ([]string, error) {
	if err := c.limiter.Wait(ctx, "destinations"); err != nil {
		return nil, err
	}

	u := c.baseURL + destinationsPath + "?origin=" + url.QueryEscape(origin)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("destination discovery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("destination discovery failed: status %d", resp.StatusCode)
	}

	var decoded DestinationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("destination discovery failed: %w", err)
	}

	codes := make([]string, 0, len(decoded.Data))
	for _, d := range decoded.Data {
		codes = append(codes, d.Destination)
	}
	return codes, nil
}

// Offers fetches one page of raw offers for a single (date pair, destination)
// cell. Any upstream irregularity (non-2xx, 204, transport or decode failure)
// yields an empty page so one bad cell never aborts a whole search.
func (c *Client) Offers(ctx context.Context, q OffersQuery, token string) []Offer {
	if err := c.limiter.Wait(ctx, "offers"); err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.offersURL(q), nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("offer fetch failed",
			logger.Field{Key: "origin", Value: q.Origin},
			logger.Field{Key: "destination", Value: q.Destination},
			logger.Field{Key: "err", Value: err},
		)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode != http.StatusNoContent {
			c.logger.Warn("offer fetch returned non-success status",
				logger.Field{Key: "origin", Value: q.Origin},
				logger.Field{Key: "destination", Value: q.Destination},
				logger.Field{Key: "status", Value: resp.StatusCode},
			)
		}
		return nil
	}

	var decoded OffersResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.logger.Warn("offer fetch decode failed", logger.Field{Key: "err", Value: err})
		return nil
	}
	return decoded.Data
}

func (c *Client) offersURL(q OffersQuery) string {
	v := url.Values{}
	v.Set("originLocationCode", q.Origin)
	v.Set("destinationLocationCode", q.Destination)
	v.Set("departureDate", q.DepartureDate)
	v.Set("adults", strconv.Itoa(q.Adults))
	v.Set("max", strconv.Itoa(q.Max))
	if q.ReturnDate != "" {
		v.Set("returnDate", q.ReturnDate)
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", strconv.Itoa(*q.MaxPrice))
	}
	return c.baseURL + offersPath + "?" + v.Encode()
}
