package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const browserUserAgent = "Mozilla/5.0"

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 4 << 20

// newHTTPClient builds a client with optional proxy support.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// getBody performs a GET and returns the body of a 200 response.
func getBody(ctx context.Context, client *http.Client, endpoint string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

// PriceRange bounds the values accepted from scraped or loosely typed sources.
type PriceRange struct {
	Min float64
	Max float64
}

// Contains reports whether p lies within the range, inclusive.
func (r PriceRange) Contains(p float64) bool {
	return p >= r.Min && p <= r.Max
}

// parsePrice turns a token like "2,345.60" into a float and checks its range.
func parsePrice(raw string, r PriceRange) (float64, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", raw, err)
	}
	if !r.Contains(p) {
		return 0, fmt.Errorf("price %.2f outside plausible range [%.0f, %.0f]", p, r.Min, r.Max)
	}
	return p, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
