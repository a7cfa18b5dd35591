package collector

import "context"

// SeriesFetcher returns historical closing prices from the primary provider.
type SeriesFetcher interface {
	FetchCloses(ctx context.Context) ([]float64, error)
	Name() string
}

// SpotFetcher returns a single current price from an auxiliary provider.
type SpotFetcher interface {
	FetchSpotPrice(ctx context.Context) (float64, error)
	Name() string
}
