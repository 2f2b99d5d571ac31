package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockLens/internal/chart"
	"StockLens/internal/collector"
	"StockLens/internal/metrics"
	"StockLens/internal/model"
	"StockLens/internal/predictor"
)

var fixedNow = time.Date(2021, 5, 1, 9, 30, 0, 0, time.UTC)

// ramp returns n daily records with closes 100, 101, ...
func ramp(n int) []model.Record {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]model.Record, n)
	for i := range records {
		records[i] = model.Record{
			Date:  start.AddDate(0, 0, i).Format("2006-01-02"),
			Close: fmt.Sprintf("%d", 100+i),
		}
	}
	return records
}

func staticModel(m predictor.Model) ModelLoader {
	return func() (predictor.Model, error) { return m, nil }
}

type errModel struct{ err error }

func (e errModel) Predict([]float64) (float64, error) { return 0, e.err }

func newTestRunner(records []model.Record, load ModelLoader) *Runner {
	r := NewRunner(collector.NewCollector(&collector.StaticSource{Data: records}, nil), load)
	r.Title = "Test Dashboard"
	r.Chart = chart.Options{Currency: "₹"}
	r.Metrics = metrics.New()
	r.Now = func() time.Time { return fixedNow }
	return r
}

// closePlusOne predicts the last close + 1.
var closePlusOne = &predictor.LinearModel{Intercept: 1, Coefficients: []float64{1, 0, 0}}

func TestRun_Predicted(t *testing.T) {
	r := newTestRunner(ramp(120), staticModel(closePlusOne))
	r.ModelPath = "model/model.json"
	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, StatusPredicted, rep.Outcome.Status)
	assert.Equal(t, 220.0, rep.Outcome.Value)
	assert.Equal(t, "220.00", rep.Outcome.Rounded.StringFixed(2))
	assert.Equal(t, rep.Series.Last(), rep.Outcome.Input.Row.Date)
	assert.NotEmpty(t, rep.Charts.Price)
	assert.NotEmpty(t, rep.Charts.Averages)
	require.NotNil(t, rep.Trend)
	assert.Equal(t, model.AlignmentBullish, rep.Trend.Alignment)
	assert.Equal(t, fixedNow, rep.GeneratedAt)

	var page bytes.Buffer
	require.NoError(t, RenderPage(&page, rep))
	assert.Contains(t, page.String(), "Predicted Next Closing Price: ₹220.00")
	assert.Contains(t, page.String(), "Latest row used for prediction")
	assert.Contains(t, page.String(), "2021-04-30")
	assert.Contains(t, page.String(), "20-Day &amp; 50-Day Moving Averages")
	assert.Contains(t, page.String(), "Model loaded successfully! <small>model/model.json</small>")
	assert.Contains(t, page.String(), "vs last close ₹219.00")
}

func TestRun_InsufficientKeepsCharts(t *testing.T) {
	r := newTestRunner(ramp(10), staticModel(closePlusOne))
	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusInsufficient, rep.Outcome.Status)
	assert.ErrorIs(t, rep.Outcome.Err, model.ErrInsufficientData)
	assert.Nil(t, rep.Outcome.Input)
	assert.Nil(t, rep.Trend)
	assert.NotEmpty(t, rep.Charts.Price)

	var page bytes.Buffer
	require.NoError(t, RenderPage(&page, rep))
	assert.Contains(t, page.String(), InsufficientMessage)
	assert.NotContains(t, page.String(), "Predicted Next Closing Price")
}

func TestRun_PredictionFailureIsSurfaced(t *testing.T) {
	r := newTestRunner(ramp(80), staticModel(errModel{errors.New("model exploded")}))
	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, rep.Outcome.Status)
	assert.Equal(t, model.KindPrediction, model.KindOf(rep.Outcome.Err))
	assert.NotNil(t, rep.Outcome.Input)

	var page bytes.Buffer
	require.NoError(t, RenderPage(&page, rep))
	assert.Contains(t, page.String(), "Prediction error: predict: model exploded")
}

func TestRun_DataFormatAborts(t *testing.T) {
	records := append(ramp(30), model.Record{Date: "2021-01-01", Close: "1"})
	modelCalled := false
	r := newTestRunner(records, func() (predictor.Model, error) {
		modelCalled = true
		return closePlusOne, nil
	})

	rep, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, rep)
	assert.Equal(t, model.KindDataFormat, model.KindOf(err))
	assert.False(t, modelCalled, "model must not load after a data error")

	var page bytes.Buffer
	require.NoError(t, RenderError(&page, "Test", err))
	assert.Contains(t, page.String(), "Data loading error")
}

func TestRun_ModelLoadAborts(t *testing.T) {
	r := newTestRunner(ramp(30), func() (predictor.Model, error) {
		return nil, errors.New("corrupt artifact")
	})
	rep, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, model.ErrModelLoad)
	assert.Equal(t, "Model loading error", ErrorLabel(err))
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestRunner(ramp(30), staticModel(closePlusOne)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Idempotent(t *testing.T) {
	r := newTestRunner(ramp(90), staticModel(closePlusOne))
	a, err := r.Run(context.Background())
	require.NoError(t, err)
	b, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a.Features, b.Features)
	assert.Equal(t, a.Outcome.Value, b.Outcome.Value)
}

func TestRunRecord(t *testing.T) {
	r := newTestRunner(ramp(120), staticModel(closePlusOne))
	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	rec := RunRecord(TriggerSchedule, rep, nil)
	assert.Equal(t, "PREDICTED", rec.Outcome)
	assert.Equal(t, TriggerSchedule, rec.Trigger)
	assert.Equal(t, 120, rec.Observations)
	assert.Equal(t, 219.0, rec.InputClose)
	assert.Equal(t, 209.5, rec.InputMA20)
	assert.Equal(t, 194.5, rec.InputMA50)
	assert.Equal(t, 220.0, rec.Predicted)

	aborted := RunRecord(TriggerHTTP, nil, errors.New("boom"))
	assert.Equal(t, "ABORTED", aborted.Outcome)
	assert.Equal(t, "boom", aborted.Message)
}
