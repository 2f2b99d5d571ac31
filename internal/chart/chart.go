// Package chart renders the price and moving-average line charts.
package chart

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"StockLens/internal/model"
)

// missing is how ECharts marks a gap in a line series.
const missing = "-"

var averageColors = []string{"orange", "green", "purple", "brown"}

// Options control chart labels and size.
type Options struct {
	Currency string
	Width    string
	Height   string
}

// Charts holds the two rendered charts as standalone HTML documents.
type Charts struct {
	Price    string
	Averages string
}

// Render builds both charts from the derived feature table.
func Render(fs *model.FeatureSet, o Options) (*Charts, error) {
	if o.Width == "" {
		o.Width = "1000px"
	}
	if o.Height == "" {
		o.Height = "500px"
	}
	dates := make([]string, len(fs.Rows))
	closes := make([]model.NullFloat, len(fs.Rows))
	for i, r := range fs.Rows {
		dates[i] = r.Date.Format("2006-01-02")
		closes[i] = r.Close
	}

	price := newLine(o, "Closing Price", subtitle(fs), dates)
	price.AddSeries("Close", lineData(closes), colored("blue"))

	avg := newLine(o, fmt.Sprintf("%s Moving Averages", windowLabel(fs.Windows)), subtitle(fs), dates)
	avg.AddSeries("Close", lineData(closes), colored("blue"))
	for i, w := range fs.Windows {
		avg.AddSeries(fmt.Sprintf("MA%d", w), lineData(fs.Average(w)), colored(averageColors[i%len(averageColors)]))
	}

	var c Charts
	var err error
	if c.Price, err = render(price); err != nil {
		return nil, fmt.Errorf("render price chart: %w", err)
	}
	if c.Averages, err = render(avg); err != nil {
		return nil, fmt.Errorf("render moving average chart: %w", err)
	}
	return &c, nil
}

func newLine(o Options, title, sub string, dates []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: o.Width, Height: o.Height}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: sub}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("Price (%s)", o.Currency)}),
	)
	line.SetXAxis(dates)
	return line
}

func colored(color string) charts.SeriesOpts {
	return func(s *charts.SingleSeries) {
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)})(s)
		charts.WithLineStyleOpts(opts.LineStyle{Color: color, Width: 1})(s)
		charts.WithItemStyleOpts(opts.ItemStyle{Color: color})(s)
	}
}

func lineData(values []model.NullFloat) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		if v.Valid {
			data[i] = opts.LineData{Value: v.Float}
		} else {
			data[i] = opts.LineData{Value: missing}
		}
	}
	return data
}

func render(line *charts.Line) (string, error) {
	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func subtitle(fs *model.FeatureSet) string {
	if len(fs.Rows) == 0 {
		return ""
	}
	return fmt.Sprintf("%s – %s", fs.Rows[0].Date.Format("2006"), fs.Rows[len(fs.Rows)-1].Date.Format("2006"))
}

func windowLabel(windows []int) string {
	s := ""
	for i, w := range windows {
		switch {
		case i == 0:
		case i == len(windows)-1:
			s += " & "
		default:
			s += ", "
		}
		s += fmt.Sprintf("%d-Day", w)
	}
	return s
}
