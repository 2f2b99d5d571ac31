package dashboard

import (
	"time"

	"StockLens/internal/recorder"
)

// Run triggers, stored with each record.
const (
	TriggerHTTP     = "HTTP"
	TriggerSchedule = "SCHEDULE"
	TriggerCommand  = "COMMAND"
	TriggerStartup  = "STARTUP"
)

// RunRecord flattens a run result for the recorder. rep may be nil when err is set.
func RunRecord(trigger string, rep *Report, err error) *recorder.RunRecord {
	rec := &recorder.RunRecord{Timestamp: time.Now(), Trigger: trigger}
	if err != nil || rep == nil {
		rec.Outcome = string(StatusAborted)
		if err != nil {
			rec.Message = err.Error()
		}
		return rec
	}
	rec.Timestamp = rep.GeneratedAt
	rec.Outcome = string(rep.Outcome.Status)
	rec.SeriesLast = rep.Series.Last()
	rec.Observations = rep.Series.Len()
	if in := rep.Outcome.Input; in != nil {
		rec.InputDate = in.Row.Date
		rec.InputClose = in.Row.Close.Float
		if len(in.Row.Averages) > 0 {
			rec.InputMA20 = in.Row.Averages[0].Float
		}
		if len(in.Row.Averages) > 1 {
			rec.InputMA50 = in.Row.Averages[1].Float
		}
	}
	switch rep.Outcome.Status {
	case StatusPredicted:
		rec.Predicted = rep.Outcome.Value
	case StatusInsufficient:
		rec.Message = InsufficientMessage
	case StatusFailed:
		rec.Message = rep.Outcome.Err.Error()
	}
	return rec
}
