package calculator

import (
	"errors"
	"fmt"

	"GoldSentinel/internal/model"
)

// Window sizes used by ComputeIndicators.
const (
	ShortPeriod        = 20
	LongPeriod         = 50
	VolatilityLookback = 20
)

// ErrInsufficientData is returned when a series is shorter than model.MinHistory.
var ErrInsufficientData = errors.New("insufficient data")

// ComputeIndicators derives moving averages and the volatility proxy from a
// usable series. All windows are taken from the end of the series.
func ComputeIndicators(series model.PriceSeries) (model.Indicators, error) {
	if !series.Usable() {
		return model.Indicators{}, fmt.Errorf("%w: have %d points, need %d", ErrInsufficientData, len(series), model.MinHistory)
	}
	prices := []float64(series)

	var ind model.Indicators
	var err error
	ind.Last = series.Last()
	if ind.SMAShort, err = CalculateSMA(prices, ShortPeriod); err != nil {
		return model.Indicators{}, fmt.Errorf("sma%d: %w", ShortPeriod, err)
	}
	if ind.SMALong, err = CalculateSMA(prices, LongPeriod); err != nil {
		return model.Indicators{}, fmt.Errorf("sma%d: %w", LongPeriod, err)
	}
	if ind.SMAShortPrev, err = CalculateSMAPrev(prices, ShortPeriod); err != nil {
		return model.Indicators{}, fmt.Errorf("sma%d prev: %w", ShortPeriod, err)
	}
	if ind.SMALongPrev, err = CalculateSMAPrev(prices, LongPeriod); err != nil {
		return model.Indicators{}, fmt.Errorf("sma%d prev: %w", LongPeriod, err)
	}
	// Only the most recent MinHistory points feed the volatility proxy.
	recent := prices[len(prices)-model.MinHistory:]
	if ind.Volatility, err = CalculateVolatility(recent, VolatilityLookback); err != nil {
		return model.Indicators{}, fmt.Errorf("volatility: %w", err)
	}
	return ind, nil
}
