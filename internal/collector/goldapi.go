package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultGoldAPIURL is the XAU/USD spot endpoint.
const DefaultGoldAPIURL = "https://www.goldapi.io/api/XAU/USD"

// GoldAPIFetcher implements SpotFetcher using the goldapi.io REST API.
type GoldAPIFetcher struct {
	URL    string
	APIKey string
	Range  PriceRange
	Client *http.Client
}

// NewGoldAPIFetcher creates a credentialed GoldAPI fetcher.
func NewGoldAPIFetcher(endpoint, apiKey string, r PriceRange, proxyURL string, timeout time.Duration) *GoldAPIFetcher {
	if endpoint == "" {
		endpoint = DefaultGoldAPIURL
	}
	return &GoldAPIFetcher{
		URL:    endpoint,
		APIKey: apiKey,
		Range:  r,
		Client: newHTTPClient(proxyURL, timeout),
	}
}

func (f *GoldAPIFetcher) Name() string { return "GoldAPI" }

func (f *GoldAPIFetcher) FetchSpotPrice(ctx context.Context) (float64, error) {
	body, err := getBody(ctx, f.Client, f.URL, map[string]string{
		"x-access-token": f.APIKey,
		"Accept":         "application/json",
	})
	if err != nil {
		return 0, fmt.Errorf("goldapi fetch: %w", err)
	}
	var result struct {
		Price *float64 `json:"price"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("goldapi decode: %w", err)
	}
	if result.Price == nil || *result.Price <= 0 {
		return 0, fmt.Errorf("goldapi: empty price")
	}
	if !f.Range.Contains(*result.Price) {
		return 0, fmt.Errorf("goldapi: price %.2f outside plausible range", *result.Price)
	}
	return *result.Price, nil
}
