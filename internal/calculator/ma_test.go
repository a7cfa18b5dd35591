package calculator

import "testing"

func TestCalculateSMA(t *testing.T) {
	tests := []struct {
		name    string
		prices  []float64
		period  int
		want    float64
		wantErr bool
	}{
		{"exact window", []float64{1, 2, 3, 4}, 4, 2.5, false},
		{"tail window", []float64{10, 1, 2, 3}, 3, 2, false},
		{"single", []float64{5}, 1, 5, false},
		{"too short", []float64{1, 2}, 3, 0, true},
		{"zero period", []float64{1, 2}, 0, 0, true},
	}
	for _, tt := range tests {
		got, err := CalculateSMA(tt.prices, tt.period)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: unexpected error state: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: expected %.4f, got %.4f", tt.name, tt.want, got)
		}
	}
}

func TestCalculateSMAPrev_ExcludesLatest(t *testing.T) {
	prices := []float64{1, 2, 3, 100}
	got, err := CalculateSMAPrev(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Errorf("expected 2, got %.4f", got)
	}
	if _, err := CalculateSMAPrev(prices, 4); err == nil {
		t.Error("expected error when shifted window does not fit")
	}
	if _, err := CalculateSMAPrev(nil, 1); err == nil {
		t.Error("expected error for empty prices")
	}
}
