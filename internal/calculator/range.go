package calculator

import (
	"errors"
	"math"

	"StockLens/internal/model"
)

// TradingDaysPerYear is the lookback used for the 52-week range.
const TradingDaysPerYear = 252

// PriceRange scans the most recent `lookback` closes and returns the high and low.
// Absent closes are skipped.
func PriceRange(closes []model.NullFloat, lookback int) (high, low float64, err error) {
	if len(closes) == 0 {
		return 0, 0, errors.New("no closes provided")
	}
	n := len(closes)
	start := n - lookback
	if start < 0 || lookback <= 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if !closes[i].Valid {
			continue
		}
		if closes[i].Float > high {
			high = closes[i].Float
		}
		if closes[i].Float < low {
			low = closes[i].Float
		}
	}
	if math.IsInf(high, -1) {
		return 0, 0, errors.New("no defined closes in range")
	}
	return high, low, nil
}

// RangePosition returns where the current price sits within [low, high] (0.0~1.0).
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
