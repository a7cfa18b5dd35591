package model

// Indicators holds the trend and volatility values derived from one series.
type Indicators struct {
	Last         float64
	SMAShort     float64
	SMALong      float64
	SMAShortPrev float64
	SMALongPrev  float64
	Volatility   float64 // mean absolute close-to-close change
}
