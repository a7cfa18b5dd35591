package calculator

import "errors"

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateSMAPrev returns the same average one sample earlier, i.e. with the
// latest price excluded.
func CalculateSMAPrev(prices []float64, period int) (float64, error) {
	if len(prices) == 0 {
		return 0, errors.New("not enough data for SMA calculation")
	}
	return CalculateSMA(prices[:len(prices)-1], period)
}
