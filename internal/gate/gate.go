// Package gate decides whether a prediction may be attempted and picks the row to feed the model.
package gate

import (
	"StockLens/internal/model"
)

// DefaultLookback is how many of the most recent rows are considered.
const DefaultLookback = 60

// Select takes the trailing `lookback` rows, keeps the ones with every feature
// defined and returns the latest of them. Older qualifying rows are never
// preferred over a newer one. An empty result is an InsufficientData error.
func Select(fs *model.FeatureSet, lookback int) (*model.PredictionInput, error) {
	const op = "select prediction input"
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	rows := fs.Rows
	if len(rows) > lookback {
		rows = rows[len(rows)-lookback:]
	}
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Complete() {
			return &model.PredictionInput{Row: rows[i], Windows: fs.Windows}, nil
		}
	}
	return nil, model.Errorf(model.KindInsufficientData, op,
		"no row with close and all moving averages defined in the last %d of %d observations", len(rows), len(fs.Rows))
}
