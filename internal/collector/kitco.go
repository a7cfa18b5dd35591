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
)

// DefaultKitcoURL is the Kitco gold price page.
const DefaultKitcoURL = "https://www.kitco.com/gold-price-today-usa/"

// kitcoBidJSON matches the bid embedded in the page's inline state.
var kitcoBidJSON = regexp.MustCompile(`"goldBid":\s*([\d.]+)`)

// kitcoBidText takes the leading number of the bid element, ignoring unit markup.
var kitcoBidText = regexp.MustCompile(`^[\d.,]+`)

// KitcoFetcher implements SpotFetcher by scraping the Kitco price page.
type KitcoFetcher struct {
	URL    string
	Range  PriceRange
	Client *http.Client
}

// NewKitcoFetcher creates a Kitco scraper.
func NewKitcoFetcher(endpoint string, r PriceRange, proxyURL string, timeout time.Duration) *KitcoFetcher {
	if endpoint == "" {
		endpoint = DefaultKitcoURL
	}
	return &KitcoFetcher{URL: endpoint, Range: r, Client: newHTTPClient(proxyURL, timeout)}
}

func (f *KitcoFetcher) Name() string { return "Kitco" }

// FetchSpotPrice reads the bid from the #sp-bid element, falling back to
// the inline goldBid field.
func (f *KitcoFetcher) FetchSpotPrice(ctx context.Context) (float64, error) {
	body, err := getBody(ctx, f.Client, f.URL, map[string]string{"User-Agent": browserUserAgent})
	if err != nil {
		return 0, fmt.Errorf("kitco fetch: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("kitco parse: %w", err)
	}
	raw := kitcoBidText.FindString(strings.TrimSpace(doc.Find("#sp-bid").First().Text()))
	if raw != "" {
		if p, err := parsePrice(raw, f.Range); err == nil {
			return p, nil
		}
	}

	m := kitcoBidJSON.FindSubmatch(body)
	if m == nil {
		if raw != "" {
			return 0, fmt.Errorf("kitco: implausible bid %q", raw)
		}
		return 0, fmt.Errorf("kitco: bid selector not found")
	}
	p, err := parsePrice(string(m[1]), f.Range)
	if err != nil {
		return 0, fmt.Errorf("kitco: %w", err)
	}
	return p, nil
}
