// Package series turns raw price records into a validated, date-ordered TimeSeries.
package series

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"StockLens/internal/model"
)

// DefaultLayouts are tried in order when no explicit date layout is configured.
var DefaultLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"02-Jan-2006",
}

// Loader validates records into a TimeSeries.
type Loader struct {
	// Layout forces a single date layout. Empty means try DefaultLayouts.
	Layout string
}

// NewLoader creates a Loader with an optional fixed date layout.
func NewLoader(layout string) *Loader {
	return &Loader{Layout: layout}
}

// Load parses, sorts and checks the records. Unparseable dates, malformed or
// negative prices and duplicate dates all fail with a DataFormat error.
func (l *Loader) Load(records []model.Record) (*model.TimeSeries, error) {
	const op = "load series"
	if len(records) == 0 {
		return nil, model.Errorf(model.KindDataFormat, op, "no records")
	}

	obs := make([]model.Observation, 0, len(records))
	for i, r := range records {
		line := r.Line
		if line == 0 {
			line = i + 1
		}
		date, err := l.parseDate(r.Date)
		if err != nil {
			return nil, model.Errorf(model.KindDataFormat, op, "line %d: unparseable date %q", line, r.Date)
		}
		closePrice, err := parseClose(r.Close)
		if err != nil {
			return nil, model.Errorf(model.KindDataFormat, op, "line %d: %v", line, err)
		}
		obs = append(obs, model.Observation{Date: date, Close: closePrice})
	}

	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })

	for i := 1; i < len(obs); i++ {
		if obs[i].Date.Equal(obs[i-1].Date) {
			return nil, model.Errorf(model.KindDataFormat, op, "duplicate date %s", obs[i].Date.Format("2006-01-02"))
		}
	}
	return &model.TimeSeries{Observations: obs}, nil
}

func (l *Loader) parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if l.Layout != "" {
		return time.Parse(l.Layout, s)
	}
	var lastErr error
	for _, layout := range DefaultLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseClose treats empty, "null" and "NaN" cells as an absent price.
func parseClose(s string) (model.NullFloat, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "nan", "na":
		return model.NullFloat{}, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return model.NullFloat{}, &priceError{raw: s, reason: "not a number"}
	}
	if math.IsInf(v, 0) {
		return model.NullFloat{}, &priceError{raw: s, reason: "not finite"}
	}
	if v < 0 {
		return model.NullFloat{}, &priceError{raw: s, reason: "negative"}
	}
	return model.Some(v), nil
}

type priceError struct {
	raw    string
	reason string
}

func (e *priceError) Error() string {
	return "close price " + strconv.Quote(e.raw) + " is " + e.reason
}
