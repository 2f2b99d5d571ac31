package model

// Alignment describes how the close sits relative to the moving averages.
type Alignment string

const (
	AlignmentBullish Alignment = "BULLISH"
	AlignmentBearish Alignment = "BEARISH"
	AlignmentMixed   Alignment = "MIXED"
)

// TrendAssessment summarises the prediction row and the predicted move.
type TrendAssessment struct {
	Alignment   Alignment
	Commentary  string
	LastClose   float64 // most recent defined close in the series
	ChangePct   float64 // predicted next close vs LastClose, in percent
	High52w     float64
	Low52w      float64
	Position52w float64 // 0.0 ~ 1.0
	RSI14       float64
}
