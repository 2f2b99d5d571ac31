package calculator

import (
	"errors"

	"StockLens/internal/model"
)

// CalculateRSI computes the Wilder-smoothed RSI over the given period.
// Requires at least period+1 closes. Returns 50.0 if data is insufficient.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 50.0, nil
	}

	// Initial average gain/loss over the first `period` changes
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}

// TrailingDefined returns the longest run of defined closes ending at the last
// defined close, capped at limit values.
func TrailingDefined(closes []model.NullFloat, limit int) []float64 {
	end := len(closes)
	for end > 0 && !closes[end-1].Valid {
		end--
	}
	start := end
	for start > 0 && closes[start-1].Valid && end-start < limit {
		start--
	}
	out := make([]float64, 0, end-start)
	for _, c := range closes[start:end] {
		out = append(out, c.Float)
	}
	return out
}
