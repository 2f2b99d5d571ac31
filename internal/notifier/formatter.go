package notifier

import (
	"fmt"
	"html"
	"strings"

	"StockLens/internal/dashboard"
	"StockLens/internal/model"
	"StockLens/internal/recorder"
)

// FormatPredictionReport formats a dashboard run into a Telegram message.
func FormatPredictionReport(rep *dashboard.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 <b>%s</b> | %s\n\n", html.EscapeString(rep.Title), rep.GeneratedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Data: %d observations, %s → %s\n",
		rep.Series.Len(), rep.Series.First().Format("2006-01-02"), rep.Series.Last().Format("2006-01-02")))

	if in := rep.Outcome.Input; in != nil {
		b.WriteString(fmt.Sprintf("\nLatest row (%s):\n", in.Row.Date.Format("2006-01-02")))
		b.WriteString(fmt.Sprintf("  Close: %s%.2f\n", rep.Currency, in.Row.Close.Float))
		for i, w := range in.Windows {
			if i < len(in.Row.Averages) {
				b.WriteString(fmt.Sprintf("  MA%d: %s%.2f\n", w, rep.Currency, in.Row.Averages[i].Float))
			}
		}
	}

	b.WriteString("\n")
	switch rep.Outcome.Status {
	case dashboard.StatusPredicted:
		b.WriteString(fmt.Sprintf("🔮 <b>Predicted Next Closing Price:</b> %s%s\n", rep.Currency, rep.Outcome.Rounded.StringFixed(2)))
		if tr := rep.Trend; tr != nil {
			b.WriteString(fmt.Sprintf("Change: %+.2f%% | Trend: %s (%s)\n", tr.ChangePct, trendLabel(tr.Alignment), tr.Commentary))
			b.WriteString(fmt.Sprintf("52w range: %.2f – %.2f (position %.0f%%) | RSI(14): %.1f\n", tr.Low52w, tr.High52w, tr.Position52w*100, tr.RSI14))
		}
	case dashboard.StatusInsufficient:
		b.WriteString("⚠️ " + dashboard.InsufficientMessage + "\n")
	default:
		msg := "unknown error"
		if rep.Outcome.Err != nil {
			msg = rep.Outcome.Err.Error()
		}
		b.WriteString("❌ Prediction error: " + html.EscapeString(msg) + "\n")
	}
	return b.String()
}

// FormatRunError formats an aborted run.
func FormatRunError(title string, err error) string {
	return fmt.Sprintf("❌ <b>%s</b>\n\n%s: %s", html.EscapeString(title), dashboard.ErrorLabel(err), html.EscapeString(err.Error()))
}

// FormatHistory lists recent runs, newest first.
func FormatHistory(runs []recorder.RunRecord, currency string) string {
	if len(runs) == 0 {
		return "No runs recorded yet."
	}
	var b strings.Builder
	b.WriteString("🗂 <b>Recent runs</b>\n\n")
	for _, r := range runs {
		line := fmt.Sprintf("%s [%s] %s", r.Timestamp.Format("2006-01-02 15:04"), r.Trigger, r.Outcome)
		if r.Outcome == string(dashboard.StatusPredicted) {
			line += fmt.Sprintf(" → %s%.2f (input %s)", currency, r.Predicted, r.InputDate.Format("2006-01-02"))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func trendLabel(a model.Alignment) string {
	switch a {
	case model.AlignmentBullish:
		return "bullish"
	case model.AlignmentBearish:
		return "bearish"
	default:
		return "mixed"
	}
}
