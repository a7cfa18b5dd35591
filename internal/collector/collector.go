package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"GoldSentinel/internal/model"
)

var (
	// ErrSourceUnavailable wraps any network, decode or validation failure of one provider.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrInsufficientHistory means the primary series is shorter than model.MinHistory.
	ErrInsufficientHistory = errors.New("insufficient history")
)

// MockSeriesFetcher returns controllable fixed data for development and testing.
type MockSeriesFetcher struct {
	Closes []float64
	Err    error
}

func (m *MockSeriesFetcher) Name() string { return "mock" }

func (m *MockSeriesFetcher) FetchCloses(_ context.Context) ([]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Closes, nil
}

// MockSpotFetcher returns a fixed price or error under the given label.
type MockSpotFetcher struct {
	Label string
	Price float64
	Err   error
}

func (m *MockSpotFetcher) Name() string { return m.Label }

func (m *MockSpotFetcher) FetchSpotPrice(_ context.Context) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Price, nil
}

// Collector orchestrates the primary series fetch and the auxiliary spot fetches.
type Collector struct {
	Series  SeriesFetcher
	Spots   []SpotFetcher
	Timeout time.Duration // per source call; zero means no extra deadline
}

// NewCollector creates a new Collector.
func NewCollector(series SeriesFetcher, spots []SpotFetcher, timeout time.Duration) *Collector {
	return &Collector{Series: series, Spots: spots, Timeout: timeout}
}

// Acquire runs every source once. Source failures are logged and folded into
// the result; they are never returned.
func (c *Collector) Acquire(ctx context.Context) *model.Acquisition {
	var (
		wg     sync.WaitGroup
		series model.PriceSeries
		err    error
	)
	spots := make(model.SpotReadings, len(c.Spots))

	wg.Add(1)
	go func() {
		defer wg.Done()
		series, err = c.fetchSeries(ctx)
	}()
	for i, f := range c.Spots {
		wg.Add(1)
		go func(i int, f SpotFetcher) {
			defer wg.Done()
			spots[i] = c.fetchSpot(ctx, f)
		}(i, f)
	}
	wg.Wait()

	if err != nil {
		log.Warn().Err(err).Str("source", c.seriesName()).Msg("historical series unavailable, falling back to spot prices")
		return &model.Acquisition{Kind: model.AcquiredSpotOnly, Spots: spots}
	}
	return &model.Acquisition{
		Kind:         model.AcquiredSeries,
		Series:       series,
		SeriesSource: c.seriesName(),
		Spots:        spots,
	}
}

func (c *Collector) fetchSeries(ctx context.Context) (model.PriceSeries, error) {
	if c.Series == nil {
		return nil, fmt.Errorf("%w: no series source configured", ErrSourceUnavailable)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	closes, err := c.Series.FetchCloses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	series := model.PriceSeries(closes)
	log.Info().Str("source", c.Series.Name()).Int("points", len(series)).Msg("historical series fetched")
	if !series.Usable() {
		return nil, fmt.Errorf("%w: got %d points, need %d", ErrInsufficientHistory, len(series), model.MinHistory)
	}
	return series, nil
}

func (c *Collector) fetchSpot(ctx context.Context, f SpotFetcher) model.SpotReading {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	reading := model.SpotReading{Source: f.Name()}
	p, err := f.FetchSpotPrice(ctx)
	if err != nil {
		reading.Err = fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		log.Warn().Err(err).Str("source", f.Name()).Msg("spot price unavailable")
		return reading
	}
	reading.Price = p
	log.Info().Str("source", f.Name()).Float64("price", p).Msg("spot price fetched")
	return reading
}

func (c *Collector) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.Timeout)
}

func (c *Collector) seriesName() string {
	if c.Series == nil {
		return "none"
	}
	return c.Series.Name()
}
