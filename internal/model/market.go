package model

import "time"

// Record is one raw row read from a price source, before validation.
type Record struct {
	Line  int // 1-based source line, 0 if unknown
	Date  string
	Close string
}

// NullFloat is a float that may be absent, like a NaN cell in a price table.
type NullFloat struct {
	Float float64
	Valid bool
}

// Some returns a present value.
func Some(v float64) NullFloat { return NullFloat{Float: v, Valid: true} }

// Observation is a single dated closing price.
type Observation struct {
	Date  time.Time
	Close NullFloat
}

// TimeSeries holds observations sorted ascending by date with unique dates.
// It is read-only once built by the loader.
type TimeSeries struct {
	Observations []Observation
}

// Len returns the number of observations.
func (ts *TimeSeries) Len() int { return len(ts.Observations) }

// Closes extracts the closing-price column.
func (ts *TimeSeries) Closes() []NullFloat {
	closes := make([]NullFloat, len(ts.Observations))
	for i, o := range ts.Observations {
		closes[i] = o.Close
	}
	return closes
}

// First and Last return the date bounds. Both are zero for an empty series.
func (ts *TimeSeries) First() time.Time {
	if len(ts.Observations) == 0 {
		return time.Time{}
	}
	return ts.Observations[0].Date
}

func (ts *TimeSeries) Last() time.Time {
	if len(ts.Observations) == 0 {
		return time.Time{}
	}
	return ts.Observations[len(ts.Observations)-1].Date
}
