package strategy

import (
	"StockLens/internal/model"
)

// alignment checks the close against the averages in window order.
// Bull alignment: close > MA20 > MA50
// Bear alignment: close < MA20 < MA50
func alignment(row model.FeatureRow) (model.Alignment, string) {
	if len(row.Averages) == 0 {
		return model.AlignmentMixed, "no moving averages"
	}
	levels := make([]float64, 0, 1+len(row.Averages))
	levels = append(levels, row.Close.Float)
	for _, a := range row.Averages {
		levels = append(levels, a.Float)
	}

	bullish, bearish := true, true
	for i := 1; i < len(levels); i++ {
		if !(levels[i-1] > levels[i]) {
			bullish = false
		}
		if !(levels[i-1] < levels[i]) {
			bearish = false
		}
	}

	switch {
	case bullish:
		return model.AlignmentBullish, "close above rising averages"
	case bearish:
		return model.AlignmentBearish, "close below falling averages"
	default:
		return model.AlignmentMixed, "averages crossed, no clear trend"
	}
}
