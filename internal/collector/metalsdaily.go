package collector

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"GoldSentinel/internal/calculator"
)

// DefaultMetalsDailyURL is the MetalsDaily gold price page.
const DefaultMetalsDailyURL = "https://www.metalsdaily.com/gold-price-today"

var priceToken = regexp.MustCompile(`\$?\s*([0-9]{3,5}\.?[0-9]{0,2})`)

// MetalsDailyFetcher implements SpotFetcher by scanning the page text for
// price-like numbers. The page has no stable markup for the quote, so the
// median of all plausible candidates is used.
type MetalsDailyFetcher struct {
	URL    string
	Range  PriceRange
	Client *http.Client
}

// NewMetalsDailyFetcher creates a MetalsDaily scraper.
func NewMetalsDailyFetcher(endpoint string, r PriceRange, proxyURL string, timeout time.Duration) *MetalsDailyFetcher {
	if endpoint == "" {
		endpoint = DefaultMetalsDailyURL
	}
	return &MetalsDailyFetcher{URL: endpoint, Range: r, Client: newHTTPClient(proxyURL, timeout)}
}

func (f *MetalsDailyFetcher) Name() string { return "MetalsDaily" }

func (f *MetalsDailyFetcher) FetchSpotPrice(ctx context.Context) (float64, error) {
	body, err := getBody(ctx, f.Client, f.URL, map[string]string{"User-Agent": browserUserAgent})
	if err != nil {
		return 0, fmt.Errorf("metalsdaily fetch: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("metalsdaily parse: %w", err)
	}
	doc.Find("script, style").Remove()
	text := pageText(doc)

	var candidates []float64
	for _, m := range priceToken.FindAllStringSubmatch(text, -1) {
		if p, err := parsePrice(m[1], f.Range); err == nil {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return 0, fmt.Errorf("metalsdaily: no plausible price found")
	}
	return calculator.Median(candidates)
}

// pageText joins every text node with a space so adjacent cells stay
// separate tokens.
func pageText(doc *goquery.Document) string {
	var parts []string
	doc.Find("*").Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#text" {
			if t := strings.TrimSpace(s.Text()); t != "" {
				parts = append(parts, t)
			}
		}
	})
	return strings.Join(parts, " ")
}
