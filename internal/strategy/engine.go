package strategy

import (
	"StockLens/internal/calculator"
	"StockLens/internal/model"
)

// Assess classifies the MA alignment of the prediction row and relates the
// predicted price to the last close, the 52-week range and the 14-day RSI.
func Assess(ts *model.TimeSeries, in *model.PredictionInput, predicted float64) *model.TrendAssessment {
	row := in.Row
	a := &model.TrendAssessment{}

	a.Alignment, a.Commentary = alignment(row)

	closes := ts.Closes()
	// the newest closes may lack averages; the change is still against the newest price
	a.LastClose = row.Close.Float
	if last := calculator.TrailingDefined(closes, 1); len(last) == 1 {
		a.LastClose = last[0]
	}
	if a.LastClose != 0 {
		a.ChangePct = (predicted - a.LastClose) / a.LastClose * 100
	}

	// neutral 50 when history is too short
	a.RSI14, _ = calculator.CalculateRSI(calculator.TrailingDefined(closes, calculator.TradingDaysPerYear), 14)

	if h, l, err := calculator.PriceRange(closes, calculator.TradingDaysPerYear); err == nil {
		a.High52w, a.Low52w = h, l
		if pos, err := calculator.RangePosition(row.Close.Float, h, l); err == nil {
			a.Position52w = pos
		}
	} else {
		a.High52w, a.Low52w, a.Position52w = row.Close.Float, row.Close.Float, 0.5
	}
	return a
}
