package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultYahooBaseURL is the chart API host. query2 has proven more stable than query1.
const DefaultYahooBaseURL = "https://query2.finance.yahoo.com"

// YahooFetcher implements SeriesFetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL  string
	Symbol   string // Yahoo ticker, e.g. XAUUSD=X
	Range    string
	Interval string
	Client   *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(baseURL, symbol, rng, interval, proxyURL string, timeout time.Duration) *YahooFetcher {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	return &YahooFetcher{
		BaseURL:  baseURL,
		Symbol:   symbol,
		Range:    rng,
		Interval: interval,
		Client:   newHTTPClient(proxyURL, timeout),
	}
}

func (f *YahooFetcher) Name() string { return "Yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
// Close entries are null for bars without trades.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchCloses returns the non-null closes in chronological order.
func (f *YahooFetcher) FetchCloses(ctx context.Context) ([]float64, error) {
	q := url.Values{}
	q.Set("range", f.Range)
	q.Set("interval", f.Interval)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.BaseURL, url.PathEscape(f.Symbol), q.Encode())

	body, err := getBody(ctx, f.Client, u, map[string]string{
		"User-Agent": browserUserAgent,
		"Accept":     "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	raw := chart.Chart.Result[0].Indicators.Quote[0].Close
	closes := make([]float64, 0, len(raw))
	for _, c := range raw {
		if c == nil || *c <= 0 {
			continue
		}
		closes = append(closes, *c)
	}
	return closes, nil
}
