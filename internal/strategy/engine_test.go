package strategy

import (
	"math"
	"testing"
	"time"

	"StockLens/internal/model"
)

func input(close, ma20, ma50 float64) *model.PredictionInput {
	return &model.PredictionInput{
		Windows: []int{20, 50},
		Row: model.FeatureRow{
			Close:    model.Some(close),
			Averages: []model.NullFloat{model.Some(ma20), model.Some(ma50)},
		},
	}
}

func flatSeries(prices ...float64) *model.TimeSeries {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := &model.TimeSeries{}
	for i, p := range prices {
		ts.Observations = append(ts.Observations, model.Observation{Date: start.AddDate(0, 0, i), Close: model.Some(p)})
	}
	return ts
}

func TestAssess_Alignment(t *testing.T) {
	tests := []struct {
		name      string
		in        *model.PredictionInput
		alignment model.Alignment
	}{
		{"bullish", input(110, 105, 100), model.AlignmentBullish},
		{"bearish", input(90, 95, 100), model.AlignmentBearish},
		{"mixed", input(100, 105, 95), model.AlignmentMixed},
		{"flat", input(100, 100, 100), model.AlignmentMixed},
	}
	ts := flatSeries(90, 100, 110)
	for _, tt := range tests {
		a := Assess(ts, tt.in, 100)
		if a.Alignment != tt.alignment {
			t.Errorf("%s: expected %s, got %s (%s)", tt.name, tt.alignment, a.Alignment, a.Commentary)
		}
	}
}

func TestAssess_ChangeAndRange(t *testing.T) {
	ts := flatSeries(80, 120, 100)
	a := Assess(ts, input(100, 100, 100), 102)

	if math.Abs(a.ChangePct-2.0) > 1e-9 {
		t.Errorf("expected +2%% change, got %.4f", a.ChangePct)
	}
	if a.High52w != 120 || a.Low52w != 80 {
		t.Errorf("expected range 80-120, got %.0f-%.0f", a.Low52w, a.High52w)
	}
	if math.Abs(a.Position52w-0.5) > 1e-9 {
		t.Errorf("expected mid-range position, got %.3f", a.Position52w)
	}
}

func TestAssess_ChangeAgainstNewestClose(t *testing.T) {
	// prediction row closed at 100; the series has a newer close of 110
	a := Assess(flatSeries(90, 100, 110), input(100, 95, 90), 121)

	if a.LastClose != 110 {
		t.Errorf("expected last close 110, got %.2f", a.LastClose)
	}
	if math.Abs(a.ChangePct-10.0) > 1e-9 {
		t.Errorf("expected +10%% change, got %.4f", a.ChangePct)
	}
}

func TestAssess_RSI(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	a := Assess(flatSeries(prices...), input(129, 120, 110), 130)
	if a.RSI14 != 100 {
		t.Errorf("expected RSI 100 for a steady climb, got %.1f", a.RSI14)
	}

	short := Assess(flatSeries(1, 2, 3), input(3, 2, 1), 3)
	if short.RSI14 != 50 {
		t.Errorf("expected neutral RSI for short history, got %.1f", short.RSI14)
	}
}
