// Package vehicledata talks to the external vehicle-lookup collaborator
// and transforms its payload into the internal vehicle schema.
package vehicledata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/logger"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Lookup fetches the raw provider payload for proxying. The payload is
// passed through opaque; callers wanting the internal schema use
// LookupByRegistration.
func (c *Client) Lookup(ctx context.Context, lookupType, country, id string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("type", lookupType)
	q.Set("country", country)
	q.Set("id", id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/vehicle?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	logger.ExternalServiceResult("vehicle-lookup", "Lookup", err, "id", id)
	if err != nil {
		return nil, fmt.Errorf("vehicle lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("vehicle lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// LookupByRegistration fetches a Swedish vehicle by registration number
// and returns it in the internal schema.
func (c *Client) LookupByRegistration(ctx context.Context, registrationNumber string) (*domain.Vehicle, error) {
	raw, err := c.Lookup(ctx, "regnr", "SE", registrationNumber)
	if err != nil {
		return nil, err
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("vehicle lookup payload: %w", err)
	}
	return Transform(&payload), nil
}
