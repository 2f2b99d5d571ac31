package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockLens/internal/dashboard"
	"StockLens/internal/model"
	"StockLens/internal/recorder"
)

func TestSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	require.NoError(t, n.Send(context.Background(), "hello"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSendWithRetry_RecoversFromServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	require.NoError(t, n.SendWithRetry(context.Background(), "hi", 3))
	assert.Equal(t, int32(2), calls.Load())
}

func TestSendWithRetry_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	err := n.SendWithRetry(context.Background(), "hi", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Equal(t, int32(1), calls.Load())
}

func TestPoll_DispatchesCommands(t *testing.T) {
	var replies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			w.Write([]byte(`{"ok":true,"result":[{"update_id":7,"message":{"text":" /predict "}},{"update_id":8}]}`))
		case "/botTOKEN/sendMessage":
			var p map[string]string
			json.NewDecoder(r.Body).Decode(&p)
			replies = append(replies, p["text"])
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	var seen []string
	next, err := n.poll(context.Background(), srv.Client(), 0, func(_ context.Context, cmd string) string {
		seen = append(seen, cmd)
		return "reply to " + cmd
	})
	require.NoError(t, err)
	assert.Equal(t, 9, next)
	assert.Equal(t, []string{"/predict"}, seen)
	assert.Equal(t, []string{"reply to /predict"}, replies)
}

func report(status dashboard.Status) *dashboard.Report {
	day := time.Date(2021, 4, 30, 0, 0, 0, 0, time.UTC)
	ts := &model.TimeSeries{Observations: []model.Observation{
		{Date: day.AddDate(0, 0, -1), Close: model.Some(99)},
		{Date: day, Close: model.Some(100)},
	}}
	rep := &dashboard.Report{Title: "Tata Steel", Currency: "₹", GeneratedAt: day, Series: ts}
	in := &model.PredictionInput{Windows: []int{20, 50}, Row: model.FeatureRow{
		Date: day, Close: model.Some(100), Averages: []model.NullFloat{model.Some(98), model.Some(95)},
	}}
	switch status {
	case dashboard.StatusPredicted:
		rep.Outcome = dashboard.Outcome{Status: status, Input: in, Value: 101.234, Rounded: decimal.NewFromFloat(101.234).Round(2)}
		rep.Trend = &model.TrendAssessment{Alignment: model.AlignmentBullish, Commentary: "close above rising averages", ChangePct: 1.234, High52w: 120, Low52w: 80, Position52w: 0.5}
	case dashboard.StatusInsufficient:
		rep.Outcome = dashboard.Outcome{Status: status}
	case dashboard.StatusFailed:
		rep.Outcome = dashboard.Outcome{Status: status, Input: in, Err: errors.New("predict: <nan>")}
	}
	return rep
}

func TestFormatPredictionReport(t *testing.T) {
	msg := FormatPredictionReport(report(dashboard.StatusPredicted))
	assert.Contains(t, msg, "Predicted Next Closing Price:</b> ₹101.23")
	assert.Contains(t, msg, "MA50: ₹95.00")
	assert.Contains(t, msg, "Trend: bullish")

	msg = FormatPredictionReport(report(dashboard.StatusInsufficient))
	assert.Contains(t, msg, dashboard.InsufficientMessage)
	assert.NotContains(t, msg, "Latest row")

	msg = FormatPredictionReport(report(dashboard.StatusFailed))
	assert.Contains(t, msg, "Prediction error: predict: &lt;nan&gt;")
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, "No runs recorded yet.", FormatHistory(nil, "₹"))

	msg := FormatHistory([]recorder.RunRecord{
		{Timestamp: time.Date(2021, 5, 1, 18, 0, 0, 0, time.UTC), Trigger: "SCHEDULE", Outcome: "PREDICTED",
			Predicted: 101.5, InputDate: time.Date(2021, 4, 30, 0, 0, 0, 0, time.UTC)},
		{Timestamp: time.Date(2021, 4, 30, 18, 0, 0, 0, time.UTC), Trigger: "HTTP", Outcome: "INSUFFICIENT"},
	}, "₹")
	assert.Contains(t, msg, "2021-05-01 18:00 [SCHEDULE] PREDICTED → ₹101.50 (input 2021-04-30)")
	assert.Contains(t, msg, "[HTTP] INSUFFICIENT")
}
