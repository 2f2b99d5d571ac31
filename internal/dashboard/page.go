package dashboard

import (
	"fmt"
	"html/template"
	"io"

	"StockLens/internal/model"
)

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"date":  func(r model.FeatureRow) string { return r.Date.Format("2006-01-02") },
	"price": func(v model.NullFloat) string { return formatNull(v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%+.2f%%", v) },
	"ratio": func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 1060px; margin: 2em auto; color: #222; }
iframe { border: 0; width: 100%; height: 560px; }
.ok { color: #1b7a1b; } .warn { color: #a36b00; } .err { color: #b00020; }
table { border-collapse: collapse; } td, th { padding: 4px 10px; border-bottom: 1px solid #ddd; text-align: right; }
</style>
</head>
<body>
<h1>📈 {{.Title}}</h1>
<p class="ok">✅ Data loaded successfully! <small>{{.Source}} · {{.Observations}} observations · {{.First}} to {{.Last}}</small></p>
<p class="ok">✅ Model loaded successfully!{{with .ModelPath}} <small>{{.}}</small>{{end}}</p>

<h2>Closing Price</h2>
<iframe title="Closing price" srcdoc="{{.PriceChart}}"></iframe>

<h2>{{.AveragesTitle}}</h2>
<iframe title="Moving averages" srcdoc="{{.AveragesChart}}"></iframe>

<h2>Next Day Price Prediction</h2>
{{with .Input}}
<p>Latest row used for prediction:</p>
<table>
<tr><th>Date</th><th>Close</th>{{range $.Windows}}<th>MA{{.}}</th>{{end}}</tr>
<tr><td>{{date .Row}}</td><td>{{price .Row.Close}}</td>{{range .Row.Averages}}<td>{{price .}}</td>{{end}}</tr>
</table>
{{end}}
{{if eq .Status "PREDICTED"}}
<p class="ok"><strong>Predicted Next Closing Price: {{.Currency}}{{.Predicted}}</strong></p>
{{with .Trend}}
<p>Trend: {{.Alignment}} ({{.Commentary}}) · predicted change {{pct .ChangePct}} vs last close {{$.Currency}}{{printf "%.2f" .LastClose}} · 52-week range {{$.Currency}}{{printf "%.2f" .Low52w}}–{{$.Currency}}{{printf "%.2f" .High52w}}, position {{ratio .Position52w}} · RSI(14) {{printf "%.1f" .RSI14}}</p>
{{end}}
{{else if eq .Status "INSUFFICIENT"}}
<p class="warn">⚠️ {{.Message}}</p>
{{else}}
<p class="err">❌ Prediction error: {{.Message}}</p>
{{end}}
<footer><small>Generated {{.Generated}}</small></footer>
</body>
</html>
`))

var errorTmpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>📈 {{.Title}}</h1>
<p style="color:#b00020">❌ {{.Label}}: {{.Message}}</p>
</body>
</html>
`))

type pageData struct {
	Title         string
	Source        string
	ModelPath     string
	Observations  int
	First, Last   string
	PriceChart    string
	AveragesTitle string
	AveragesChart string
	Windows       []int
	Input         *model.PredictionInput
	Status        string
	Currency      string
	Predicted     string
	Message       string
	Trend         *model.TrendAssessment
	Generated     string
}

// RenderPage writes the full dashboard for a completed run.
func RenderPage(w io.Writer, rep *Report) error {
	d := pageData{
		Title:         rep.Title,
		Source:        rep.Source,
		ModelPath:     rep.ModelPath,
		Observations:  rep.Series.Len(),
		First:         rep.Series.First().Format("2006-01-02"),
		Last:          rep.Series.Last().Format("2006-01-02"),
		PriceChart:    rep.Charts.Price,
		AveragesTitle: averagesTitle(rep.Features.Windows),
		AveragesChart: rep.Charts.Averages,
		Windows:       rep.Features.Windows,
		Input:         rep.Outcome.Input,
		Status:        string(rep.Outcome.Status),
		Currency:      rep.Currency,
		Trend:         rep.Trend,
		Generated:     rep.GeneratedAt.Format("2006-01-02 15:04:05"),
	}
	switch rep.Outcome.Status {
	case StatusPredicted:
		d.Predicted = rep.Outcome.Rounded.StringFixed(2)
	case StatusInsufficient:
		d.Message = InsufficientMessage
	default:
		if rep.Outcome.Err != nil {
			d.Message = rep.Outcome.Err.Error()
		}
	}
	return pageTmpl.Execute(w, d)
}

// RenderError writes the page shown when a run aborts.
func RenderError(w io.Writer, title string, err error) error {
	return errorTmpl.Execute(w, struct {
		Title, Label, Message string
	}{title, ErrorLabel(err), err.Error()})
}

// ErrorLabel names an aborting error the way the dashboard shows it.
func ErrorLabel(err error) string {
	switch model.KindOf(err) {
	case model.KindDataFormat:
		return "Data loading error"
	case model.KindModelLoad:
		return "Model loading error"
	case model.KindInsufficientData:
		return "Insufficient data"
	case model.KindPrediction:
		return "Prediction error"
	default:
		return "Error"
	}
}

func averagesTitle(windows []int) string {
	s := ""
	for i, w := range windows {
		if i > 0 {
			s += " & "
		}
		s += fmt.Sprintf("%d-Day", w)
	}
	return s + " Moving Averages"
}

func formatNull(v model.NullFloat) string {
	if !v.Valid {
		return "–"
	}
	return fmt.Sprintf("%.2f", v.Float)
}
