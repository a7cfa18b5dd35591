package model

// MinHistory is the minimum number of closes for a series to be usable.
// It covers the 50-period average, its previous-window value and the
// volatility lookback.
const MinHistory = 60

// PriceSeries is a chronological list of positive closing prices.
type PriceSeries []float64

// Last returns the most recent close, or 0 for an empty series.
func (s PriceSeries) Last() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Usable reports whether the series is long enough for indicator computation.
func (s PriceSeries) Usable() bool { return len(s) >= MinHistory }

// SpotReading is a single current price from one provider.
// A reading with a non-nil Err is absent.
type SpotReading struct {
	Source string
	Price  float64
	Err    error
}

// Present reports whether the provider returned a price.
func (r SpotReading) Present() bool { return r.Err == nil }

// SpotReadings keeps readings in provider configuration order.
type SpotReadings []SpotReading

// Get returns the reading for a source label.
func (rs SpotReadings) Get(source string) (SpotReading, bool) {
	for _, r := range rs {
		if r.Source == source {
			return r, true
		}
	}
	return SpotReading{}, false
}

// Present returns only the readings that succeeded.
func (rs SpotReadings) Present() SpotReadings {
	out := make(SpotReadings, 0, len(rs))
	for _, r := range rs {
		if r.Present() {
			out = append(out, r)
		}
	}
	return out
}

// AcquisitionKind tells which stage of the fallback chain produced data.
type AcquisitionKind int

const (
	// AcquiredSeries means the primary source returned a usable series.
	AcquiredSeries AcquisitionKind = iota
	// AcquiredSpotOnly means only auxiliary spot readings are available.
	AcquiredSpotOnly
)

func (k AcquisitionKind) String() string {
	switch k {
	case AcquiredSeries:
		return "SERIES"
	case AcquiredSpotOnly:
		return "SPOT_ONLY"
	default:
		return "UNKNOWN"
	}
}

// Acquisition is the result of one acquisition run.
// Series is set only when Kind is AcquiredSeries.
type Acquisition struct {
	Kind         AcquisitionKind
	Series       PriceSeries
	SeriesSource string
	Spots        SpotReadings
}

// AllFailed reports whether neither the series nor any spot source produced data.
func (a *Acquisition) AllFailed() bool {
	return a.Kind == AcquiredSpotOnly && len(a.Spots.Present()) == 0
}
