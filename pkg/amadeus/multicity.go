package amadeus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// MultiCitySearch posts a multi-leg itinerary search against the offers
// endpoint. Legs and travelers are assigned sequential ids, mirroring what
// the upstream expects.
func (c *Client) MultiCitySearch(ctx context.Context, req MultiCityRequest, token string) (*OffersResponse, error) {
	if err := c.limiter.Wait(ctx, "offers"); err != nil {
		return nil, err
	}

	for i := range req.OriginDestinations {
		req.OriginDestinations[i].ID = strconv.Itoa(i + 1)
	}
	for i := range req.Travelers {
		req.Travelers[i].ID = strconv.Itoa(i + 1)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("multi-city search failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+offersPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("multi-city search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("multi-city search failed: status %d: %s", resp.StatusCode, detail)
	}

	var decoded OffersResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("multi-city search failed: %w", err)
	}
	return &decoded, nil
}
