package calculator

import (
	"errors"
	"math"
	"sort"
)

// CalculateVolatility returns the mean absolute change between consecutive
// closes over the last lookback changes. It is a close-only stand-in for ATR.
func CalculateVolatility(prices []float64, lookback int) (float64, error) {
	if lookback <= 0 {
		return 0, errors.New("lookback must be positive")
	}
	if len(prices) < lookback+1 {
		return 0, errors.New("not enough data for volatility calculation")
	}
	sum := 0.0
	for i := len(prices) - lookback; i < len(prices); i++ {
		sum += math.Abs(prices[i] - prices[i-1])
	}
	return sum / float64(lookback), nil
}

// Median returns the median of values without modifying them.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.New("no values for median")
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}
