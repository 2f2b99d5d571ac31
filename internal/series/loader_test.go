package series

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockLens/internal/model"
)

func TestLoad_SortsAscending(t *testing.T) {
	records := []model.Record{
		{Date: "2021-03-03", Close: "102.5"},
		{Date: "2021-03-01", Close: "100"},
		{Date: "2021-03-02", Close: "101"},
	}
	ts, err := NewLoader("").Load(records)
	require.NoError(t, err)
	require.Equal(t, 3, ts.Len())

	for i := 1; i < ts.Len(); i++ {
		assert.True(t, ts.Observations[i-1].Date.Before(ts.Observations[i].Date))
	}
	assert.Equal(t, model.Some(100), ts.Observations[0].Close)
	assert.Equal(t, model.Some(102.5), ts.Observations[2].Close)
	assert.Equal(t, "2021-03-03", ts.Last().Format("2006-01-02"))
}

func TestLoad_DuplicateDateRejected(t *testing.T) {
	records := []model.Record{
		{Date: "2021-03-01", Close: "100"},
		{Date: "2021-03-02", Close: "101"},
		{Date: "2021-03-01", Close: "99"},
	}
	_, err := NewLoader("").Load(records)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrDataFormat))
	assert.Contains(t, err.Error(), "duplicate date 2021-03-01")
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		record model.Record
		want   string
	}{
		{"bad date", model.Record{Line: 7, Date: "yesterday", Close: "1"}, "line 7: unparseable date"},
		{"non numeric close", model.Record{Date: "2021-01-01", Close: "abc"}, "not a number"},
		{"negative close", model.Record{Date: "2021-01-01", Close: "-3"}, "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader("").Load([]model.Record{tt.record})
			require.Error(t, err)
			assert.Equal(t, model.KindDataFormat, model.KindOf(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_EmptyInput(t *testing.T) {
	_, err := NewLoader("").Load(nil)
	assert.ErrorIs(t, err, model.ErrDataFormat)
}

func TestLoad_MissingCloseKeptAsAbsent(t *testing.T) {
	records := []model.Record{
		{Date: "2021-01-01", Close: "10"},
		{Date: "2021-01-02", Close: ""},
		{Date: "2021-01-03", Close: "NaN"},
	}
	ts, err := NewLoader("").Load(records)
	require.NoError(t, err)
	require.Equal(t, 3, ts.Len())
	assert.True(t, ts.Observations[0].Close.Valid)
	assert.False(t, ts.Observations[1].Close.Valid)
	assert.False(t, ts.Observations[2].Close.Valid)
}

func TestLoad_DateLayouts(t *testing.T) {
	ts, err := NewLoader("").Load([]model.Record{
		{Date: "2020/05/04", Close: "1"},
		{Date: "2020-05-05 00:00:00", Close: "2"},
		{Date: "06-May-2020", Close: "3"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2020-05-04", ts.First().Format("2006-01-02"))
	assert.Equal(t, "2020-05-06", ts.Last().Format("2006-01-02"))

	_, err = NewLoader("02.01.2006").Load([]model.Record{{Date: "2020-05-04", Close: "1"}})
	assert.ErrorIs(t, err, model.ErrDataFormat)
}
