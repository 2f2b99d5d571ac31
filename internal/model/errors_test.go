package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := Errorf(KindDataFormat, "load series", "line %d: bad date %q", 3, "x")
	wrapped := fmt.Errorf("run: %w", base)

	assert.Equal(t, KindDataFormat, KindOf(base))
	assert.Equal(t, KindDataFormat, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}

func TestErrorIs_MatchesSentinelByKind(t *testing.T) {
	err := fmt.Errorf("gate: %w", &Error{Kind: KindInsufficientData, Op: "select"})

	assert.True(t, errors.Is(err, ErrInsufficientData))
	assert.False(t, errors.Is(err, ErrPrediction))
	assert.Equal(t, "select: insufficient data", errors.Unwrap(err).Error())
}

func TestFeatureRow_Complete(t *testing.T) {
	row := FeatureRow{Close: Some(10), Averages: []NullFloat{Some(9), {}}}
	assert.False(t, row.Complete())

	row.Averages[1] = Some(8)
	assert.True(t, row.Complete())

	in := &PredictionInput{Row: row, Windows: []int{20, 50}}
	assert.Equal(t, []float64{10, 9, 8}, in.Vector())
}
