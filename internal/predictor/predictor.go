// Package predictor wraps the pre-trained next-day price model.
package predictor

import (
	"math"
	"strconv"

	"StockLens/internal/calculator"
	"StockLens/internal/model"
)

// FeatureNames lists the model inputs in vector order: the close followed by
// one "MA<N>" per window. Nil windows mean calculator.DefaultWindows.
func FeatureNames(windows []int) []string {
	if len(windows) == 0 {
		windows = calculator.DefaultWindows
	}
	names := make([]string, 0, len(windows)+1)
	names = append(names, "Close")
	for _, w := range windows {
		names = append(names, "MA"+strconv.Itoa(w))
	}
	return names
}

// Model maps one feature vector to a predicted next closing price.
type Model interface {
	Predict(features []float64) (float64, error)
}

// LinearModel is an ordinary least-squares regression: intercept + Σ wᵢxᵢ.
type LinearModel struct {
	Intercept    float64
	Coefficients []float64
}

// Predict evaluates the regression on a single feature vector.
func (m *LinearModel) Predict(features []float64) (float64, error) {
	const op = "predict"
	if len(features) != len(m.Coefficients) {
		return 0, model.Errorf(model.KindPrediction, op, "expected %d features, got %d", len(m.Coefficients), len(features))
	}
	pred := m.Intercept
	for i, f := range features {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, model.Errorf(model.KindPrediction, op, "feature %d is not finite", i)
		}
		pred += m.Coefficients[i] * f
	}
	if math.IsNaN(pred) || math.IsInf(pred, 0) {
		return 0, model.Errorf(model.KindPrediction, op, "model produced non-finite value")
	}
	return pred, nil
}

// Predict runs the model once on the prediction input. Failures that are not
// already kinded are reported as Prediction errors.
func Predict(m Model, in *model.PredictionInput) (float64, error) {
	v, err := m.Predict(in.Vector())
	if err != nil {
		if model.KindOf(err) == model.KindPrediction {
			return 0, err
		}
		return 0, &model.Error{Kind: model.KindPrediction, Op: "predict", Err: err}
	}
	return v, nil
}
