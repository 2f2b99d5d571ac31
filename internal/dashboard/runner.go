// Package dashboard runs the load → derive → chart → predict pipeline and renders its page.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"StockLens/internal/calculator"
	"StockLens/internal/chart"
	"StockLens/internal/collector"
	"StockLens/internal/gate"
	"StockLens/internal/metrics"
	"StockLens/internal/model"
	"StockLens/internal/predictor"
	"StockLens/internal/strategy"
)

// Status is the state of the prediction section of a report.
type Status string

const (
	StatusPredicted    Status = "PREDICTED"
	StatusInsufficient Status = "INSUFFICIENT"
	StatusFailed       Status = "FAILED"
	// StatusAborted marks a run that stopped before the prediction section.
	StatusAborted Status = "ABORTED"
)

// InsufficientMessage is shown instead of a prediction when the gate finds no usable row.
const InsufficientMessage = "Not enough data for prediction."

// Outcome is the prediction section of a report.
type Outcome struct {
	Status  Status
	Input   *model.PredictionInput
	Value   float64
	Rounded decimal.Decimal
	Err     error
}

// Report is everything one run produced.
type Report struct {
	Title       string
	Currency    string
	Source      string
	ModelPath   string
	GeneratedAt time.Time
	Series      *model.TimeSeries
	Features    *model.FeatureSet
	Charts      *chart.Charts
	Outcome     Outcome
	Trend       *model.TrendAssessment
}

// ModelLoader loads the model artifact for one run.
type ModelLoader func() (predictor.Model, error)

// FileModel loads a linear-regression artifact from path on every call and
// checks its inputs against the configured windows.
func FileModel(path string, windows []int) ModelLoader {
	return func() (predictor.Model, error) {
		m, err := predictor.LoadModel(path, windows...)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// Runner executes dashboard runs. It holds no state between runs.
type Runner struct {
	Collector *collector.Collector
	LoadModel ModelLoader
	ModelPath string // shown on the page; empty when the model is not file-backed
	Windows   []int
	Lookback  int
	Title     string
	Chart     chart.Options
	Metrics   *metrics.Metrics
	Now       func() time.Time

	logger zerolog.Logger
}

// NewRunner creates a Runner with default windows and lookback.
func NewRunner(col *collector.Collector, load ModelLoader) *Runner {
	return &Runner{
		Collector: col,
		LoadModel: load,
		Windows:   calculator.DefaultWindows,
		Lookback:  gate.DefaultLookback,
		Now:       time.Now,
		logger:    log.With().Str("component", "dashboard").Logger(),
	}
}

// Run performs one full pass. Load, model and chart failures abort the run and
// are returned; nothing that depends on them is produced. Insufficient data
// and prediction failures are reported in Report.Outcome instead.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	rep, err := r.run(ctx)
	status := StatusAborted
	if rep != nil {
		status = rep.Outcome.Status
	}
	r.Metrics.ObserveRun(string(status), time.Since(start))
	if err != nil {
		r.logger.Error().Err(err).Str("kind", string(model.KindOf(err))).Msg("run aborted")
	}
	return rep, err
}

func (r *Runner) run(ctx context.Context) (*Report, error) {
	ts, err := r.Collector.Collect(ctx)
	if err != nil {
		return nil, err
	}
	r.Metrics.SetSeries(ts.Len())
	r.logger.Info().Int("observations", ts.Len()).Msg("data loaded")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := r.LoadModel()
	if err != nil {
		if model.KindOf(err) == model.KindUnknown {
			err = &model.Error{Kind: model.KindModelLoad, Op: "load model", Err: err}
		}
		return nil, err
	}
	r.logger.Info().Msg("model loaded")

	fs, err := calculator.Derive(ts, r.Windows)
	if err != nil {
		return nil, err
	}

	charts, err := chart.Render(fs, r.Chart)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Title:       r.Title,
		Currency:    r.Chart.Currency,
		Source:      r.Collector.Source.Name(),
		ModelPath:   r.ModelPath,
		GeneratedAt: r.now(),
		Series:      ts,
		Features:    fs,
		Charts:      charts,
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	in, err := gate.Select(fs, r.Lookback)
	if err != nil {
		if !errors.Is(err, model.ErrInsufficientData) {
			return nil, err
		}
		r.logger.Warn().Err(err).Msg("prediction skipped")
		rep.Outcome = Outcome{Status: StatusInsufficient, Err: err}
		return rep, nil
	}

	v, err := predictor.Predict(m, in)
	if err != nil {
		r.logger.Error().Err(err).Msg("prediction failed")
		rep.Outcome = Outcome{Status: StatusFailed, Input: in, Err: err}
		return rep, nil
	}

	rep.Outcome = Outcome{
		Status:  StatusPredicted,
		Input:   in,
		Value:   v,
		Rounded: decimal.NewFromFloat(v).Round(2),
	}
	rep.Trend = strategy.Assess(ts, in, v)
	r.Metrics.SetPrediction(v)
	r.logger.Info().
		Time("input_date", in.Row.Date).
		Str("predicted", rep.Outcome.Rounded.StringFixed(2)).
		Msg("prediction ready")
	return rep, nil
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
