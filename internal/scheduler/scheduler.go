package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockLens/internal/dashboard"
	"StockLens/internal/notifier"
	"StockLens/internal/recorder"
)

// historyLimit is how many runs /history lists.
const historyLimit = 5

// Sender delivers report text. *notifier.TelegramNotifier satisfies it.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the cron report task and chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   *dashboard.Runner
	Notifier Sender
	Recorder recorder.Recorder
	Title    string
	Currency string
	Ctx      context.Context

	logger zerolog.Logger
}

// NewScheduler creates a new Scheduler. A nil notifier disables delivery.
func NewScheduler(ctx context.Context, runner *dashboard.Runner, sender Sender, rec recorder.Recorder) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   runner,
		Notifier: sender,
		Recorder: rec,
		Title:    runner.Title,
		Currency: runner.Chart.Currency,
		Ctx:      ctx,
		logger:   log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterReport registers the periodic report task.
func (s *Scheduler) RegisterReport(reportCron string) error {
	if _, err := s.Cron.AddFunc(reportCron, func() { s.reportTask(dashboard.TriggerSchedule) }); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}

// RunNow executes the report task immediately, recording the run under trigger
// (TriggerStartup for RUN_ON_START).
func (s *Scheduler) RunNow(trigger string) {
	s.reportTask(trigger)
}

func (s *Scheduler) reportTask(trigger string) {
	s.logger.Info().Str("trigger", trigger).Msg("running report task")
	text := s.runAndFormat(s.Ctx, trigger)
	s.trySend(text)
}

// runAndFormat performs one run, records it and returns the report text.
func (s *Scheduler) runAndFormat(ctx context.Context, trigger string) string {
	rep, err := s.Runner.Run(ctx)
	if recErr := s.Recorder.RecordRun(dashboard.RunRecord(trigger, rep, err)); recErr != nil {
		s.logger.Error().Err(recErr).Msg("record run")
	}
	if err != nil {
		return notifier.FormatRunError(s.Title, err)
	}
	return notifier.FormatPredictionReport(rep)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	// "/predict@SomeBot" addresses the bot explicitly in group chats
	if i := strings.Index(command, "@"); i > 0 {
		command = command[:i]
	}
	switch strings.ToLower(command) {
	case "/predict":
		return s.runAndFormat(ctx, dashboard.TriggerCommand)
	case "/history":
		runs, err := s.Recorder.RecentRuns(historyLimit)
		if err != nil {
			s.logger.Error().Err(err).Msg("load history")
			return "❌ could not load history: " + err.Error()
		}
		return notifier.FormatHistory(runs, s.Currency)
	default:
		return "Available commands:\n• /predict — run the dashboard and predict the next close\n• /history — recent runs"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		s.logger.Debug().Msg("no notifier configured, report not sent")
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.logger.Error().Err(err).Msg("send notification")
	}
}
