package collector

import (
	"context"

	"StockLens/internal/model"
)

// Source defines the interface for reading raw price records.
type Source interface {
	Records(ctx context.Context) ([]model.Record, error)
	Name() string
}
