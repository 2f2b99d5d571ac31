package model

import "time"

// FeatureRow is the closing price plus one trailing average per window for a single date.
// Averages is aligned with FeatureSet.Windows.
type FeatureRow struct {
	Date     time.Time
	Close    NullFloat
	Averages []NullFloat
}

// Complete reports whether the close and every average are defined.
func (r FeatureRow) Complete() bool {
	if !r.Close.Valid {
		return false
	}
	for _, a := range r.Averages {
		if !a.Valid {
			return false
		}
	}
	return true
}

// FeatureSet is the derived feature table of a series, one row per observation.
type FeatureSet struct {
	Windows []int
	Rows    []FeatureRow
}

// Average returns the column for the given window, or nil if it was not derived.
func (fs *FeatureSet) Average(window int) []NullFloat {
	idx := -1
	for i, w := range fs.Windows {
		if w == window {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	col := make([]NullFloat, len(fs.Rows))
	for i, r := range fs.Rows {
		col[i] = r.Averages[idx]
	}
	return col
}

// PredictionInput is the single feature row handed to the model.
type PredictionInput struct {
	Row     FeatureRow
	Windows []int
}

// Vector returns the features in model order: close, then each average in window order.
func (p *PredictionInput) Vector() []float64 {
	v := make([]float64, 0, 1+len(p.Row.Averages))
	v = append(v, p.Row.Close.Float)
	for _, a := range p.Row.Averages {
		v = append(v, a.Float)
	}
	return v
}
