package recorder

import "time"

// RunRecord holds one dashboard run and its prediction outcome.
type RunRecord struct {
	Timestamp    time.Time
	Trigger      string // "HTTP", "SCHEDULE", "COMMAND", "STARTUP"
	Outcome      string // "PREDICTED", "INSUFFICIENT", "FAILED", "ABORTED"
	SeriesLast   time.Time
	Observations int
	InputDate    time.Time
	InputClose   float64
	InputMA20    float64
	InputMA50    float64
	Predicted    float64
	Message      string
}

// Recorder persists run history for analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecentRuns(limit int) ([]RunRecord, error)
	Close() error
}
