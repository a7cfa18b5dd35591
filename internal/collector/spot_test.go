package collector

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var goldRange = PriceRange{Min: 900, Max: 10000}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoldAPIFetcher_SendsTokenAndParsesPrice(t *testing.T) {
	var token string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = r.Header.Get("x-access-token")
		fmt.Fprint(w, `{"metal":"XAU","currency":"USD","price":2345.6}`)
	}))
	defer srv.Close()

	f := NewGoldAPIFetcher(srv.URL, "secret", goldRange, "", 5*time.Second)
	p, err := f.FetchSpotPrice(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != 2345.6 {
		t.Errorf("expected 2345.6, got %.2f", p)
	}
	if token != "secret" {
		t.Errorf("expected access token header, got %q", token)
	}
}

func TestGoldAPIFetcher_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"missing price", http.StatusOK, `{"metal":"XAU"}`},
		{"zero price", http.StatusOK, `{"price":0}`},
		{"string price", http.StatusOK, `{"price":"abc"}`},
		{"implausible", http.StatusOK, `{"price":12.5}`},
		{"unauthorized", http.StatusUnauthorized, `{"error":"invalid key"}`},
	}
	for _, tt := range tests {
		srv := serve(t, tt.status, tt.body)
		f := NewGoldAPIFetcher(srv.URL, "k", goldRange, "", 5*time.Second)
		if _, err := f.FetchSpotPrice(context.Background()); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestKitcoFetcher_Selector(t *testing.T) {
	srv := serve(t, http.StatusOK, `<html><body><div><span id="sp-bid">2,351.40</span></div></body></html>`)
	f := NewKitcoFetcher(srv.URL, goldRange, "", 5*time.Second)
	p, err := f.FetchSpotPrice(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != 2351.4 {
		t.Errorf("expected 2351.40, got %.2f", p)
	}
}

func TestKitcoFetcher_InlineFallback(t *testing.T) {
	srv := serve(t, http.StatusOK, `<html><script>window.__STATE__={"goldBid": 2349.9,"goldAsk":2350.9}</script></html>`)
	f := NewKitcoFetcher(srv.URL, goldRange, "", 5*time.Second)
	p, err := f.FetchSpotPrice(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != 2349.9 {
		t.Errorf("expected 2349.90, got %.2f", p)
	}
}

func TestKitcoFetcher_LeadingNumber(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{"unit suffix", `<span id="sp-bid">2,351.40<small>USD</small></span>`, 2351.4},
		{"placeholder bid", `<span id="sp-bid">--</span><script>{"goldBid": 2349.9}</script>`, 2349.9},
		{"implausible bid", `<span id="sp-bid">23.10</span><script>{"goldBid": 2349.9}</script>`, 2349.9},
	}
	for _, tt := range tests {
		srv := serve(t, http.StatusOK, tt.body)
		f := NewKitcoFetcher(srv.URL, goldRange, "", 5*time.Second)
		p, err := f.FetchSpotPrice(context.Background())
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if p != tt.want {
			t.Errorf("%s: expected %.2f, got %.2f", tt.name, tt.want, p)
		}
	}
}

func TestKitcoFetcher_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no selector", `<html><body>maintenance</body></html>`},
		{"not numeric", `<span id="sp-bid">N/A</span>`},
		{"implausible", `<span id="sp-bid">23.10</span>`},
	}
	for _, tt := range tests {
		srv := serve(t, http.StatusOK, tt.body)
		f := NewKitcoFetcher(srv.URL, goldRange, "", 5*time.Second)
		if _, err := f.FetchSpotPrice(context.Background()); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestMetalsDailyFetcher_MedianOfPlausible(t *testing.T) {
	page := `<html><head><script>var build = 123456;</script></head><body>
		<p>Gold 2340.00 bid</p><p>Gold spot 2345.50</p><p>Ask 2350.00</p>
		<p>Silver 29.10</p><p>Year 2024</p><p>Platinum 880.00</p>
	</body></html>`
	srv := serve(t, http.StatusOK, page)
	f := NewMetalsDailyFetcher(srv.URL, PriceRange{Min: 2300, Max: 2400}, "", 5*time.Second)
	p, err := f.FetchSpotPrice(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != 2345.5 {
		t.Errorf("expected median 2345.50, got %.2f", p)
	}
}

func TestMetalsDailyFetcher_TableCells(t *testing.T) {
	page := `<html><body><table><tr><td>1</td><td>2345.60</td></tr><tr><td>2</td><td>2346.00</td></tr></table></body></html>`
	srv := serve(t, http.StatusOK, page)
	f := NewMetalsDailyFetcher(srv.URL, goldRange, "", 5*time.Second)
	p, err := f.FetchSpotPrice(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p-2345.8) > 1e-9 {
		t.Errorf("expected median 2345.80, got %.2f", p)
	}
}

func TestMetalsDailyFetcher_NoCandidates(t *testing.T) {
	srv := serve(t, http.StatusOK, `<html><body>Silver 29.10</body></html>`)
	f := NewMetalsDailyFetcher(srv.URL, goldRange, "", 5*time.Second)
	if _, err := f.FetchSpotPrice(context.Background()); err == nil {
		t.Error("expected error when no plausible price exists")
	}
}

func TestPriceRange_Contains(t *testing.T) {
	if !goldRange.Contains(900) || !goldRange.Contains(10000) {
		t.Error("range bounds must be inclusive")
	}
	if goldRange.Contains(899.99) || goldRange.Contains(10000.01) {
		t.Error("values outside the range must be rejected")
	}
}
