package calculator

import (
	"errors"
	"fmt"

	"StockLens/internal/model"
)

// DefaultWindows are the moving-average periods fed to the model alongside the close.
var DefaultWindows = []int{20, 50}

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

// RollingSMA returns, for every index, the mean of the trailing `period` closes
// ending at that index. The value is absent during warm-up and whenever the
// window contains an absent close.
func RollingSMA(closes []model.NullFloat, period int) ([]model.NullFloat, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	out := make([]model.NullFloat, len(closes))
	window := make([]float64, 0, period)
	for i := period - 1; i < len(closes); i++ {
		window = window[:0]
		for _, c := range closes[i-period+1 : i+1] {
			if !c.Valid {
				break
			}
			window = append(window, c.Float)
		}
		if len(window) < period {
			continue
		}
		ma, err := CalculateSMA(window, period)
		if err != nil {
			return nil, err
		}
		out[i] = model.Some(ma)
	}
	return out, nil
}

// Derive builds the feature table: the close plus one rolling SMA per window.
// It has no side effects; calling it twice on the same series yields equal output.
func Derive(ts *model.TimeSeries, windows []int) (*model.FeatureSet, error) {
	if len(windows) == 0 {
		return nil, errors.New("at least one window is required")
	}
	closes := ts.Closes()
	columns := make([][]model.NullFloat, len(windows))
	for i, w := range windows {
		col, err := RollingSMA(closes, w)
		if err != nil {
			return nil, fmt.Errorf("MA%d: %w", w, err)
		}
		columns[i] = col
	}

	rows := make([]model.FeatureRow, ts.Len())
	for i, o := range ts.Observations {
		avgs := make([]model.NullFloat, len(windows))
		for j := range windows {
			avgs[j] = columns[j][i]
		}
		rows[i] = model.FeatureRow{Date: o.Date, Close: o.Close, Averages: avgs}
	}

	ws := make([]int, len(windows))
	copy(ws, windows)
	return &model.FeatureSet{Windows: ws, Rows: rows}, nil
}
