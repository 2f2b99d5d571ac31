package collector

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"StockLens/internal/model"
	"StockLens/internal/series"
)

// StaticSource returns fixed records for development and testing.
type StaticSource struct {
	Data []model.Record
	Err  error
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Records(_ context.Context) ([]model.Record, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Record, len(s.Data))
	copy(out, s.Data)
	return out, nil
}

// Collector reads records from a source and validates them into a series.
type Collector struct {
	Source Source
	Loader *series.Loader
}

// NewCollector creates a new Collector.
func NewCollector(source Source, loader *series.Loader) *Collector {
	if loader == nil {
		loader = series.NewLoader("")
	}
	return &Collector{Source: source, Loader: loader}
}

// Collect reads the source and returns the loaded series.
func (c *Collector) Collect(ctx context.Context) (*model.TimeSeries, error) {
	records, err := c.Source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.Source.Name(), err)
	}
	ts, err := c.Loader.Load(records)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("source", c.Source.Name()).
		Int("observations", ts.Len()).
		Time("first", ts.First()).
		Time("last", ts.Last()).
		Msg("series loaded")
	return ts, nil
}
