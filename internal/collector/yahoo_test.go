package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func chartJSON(closes []string) string {
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[1],"indicators":{"quote":[{"close":[%s]}]}}],"error":null}}`,
		strings.Join(closes, ","))
}

func TestYahooFetcher_FiltersNulls(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, chartJSON([]string{"2000.5", "null", "2001.25", "0", "2002"}))
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "XAUUSD=X", "5d", "15m", "", 5*time.Second)
	closes, err := f.FetchCloses(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{2000.5, 2001.25, 2002}
	if len(closes) != len(want) {
		t.Fatalf("expected %v, got %v", want, closes)
	}
	for i := range want {
		if closes[i] != want[i] {
			t.Errorf("index %d: expected %.2f, got %.2f", i, want[i], closes[i])
		}
	}
	if gotPath != "/v8/finance/chart/XAUUSD=X" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if !strings.Contains(gotQuery, "range=5d") || !strings.Contains(gotQuery, "interval=15m") {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if gotUA == "" {
		t.Error("expected a User-Agent header")
	}
}

func TestYahooFetcher_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, "oops"},
		{"malformed json", http.StatusOK, "{not json"},
		{"api error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`},
		{"missing quote", http.StatusOK, `{"chart":{"result":[{"indicators":{"quote":[]}}],"error":null}}`},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			fmt.Fprint(w, tt.body)
		}))
		f := NewYahooFetcher(srv.URL, "XAUUSD=X", "5d", "15m", "", 5*time.Second)
		if _, err := f.FetchCloses(context.Background()); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		srv.Close()
	}
}
