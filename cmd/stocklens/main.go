package main

import (
	"bytes"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"StockLens/internal/chart"
	"StockLens/internal/collector"
	"StockLens/internal/config"
	"StockLens/internal/dashboard"
	"StockLens/internal/logging"
	"StockLens/internal/metrics"
	"StockLens/internal/notifier"
	"StockLens/internal/recorder"
	"StockLens/internal/scheduler"
	"StockLens/internal/series"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logging.Setup("info")
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Setup(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().Str("config", cfgPath).Msg("StockLens starting")

	// Init pipeline
	source := collector.NewCSVSource(cfg.Data.CSVPath, cfg.Data.DateColumn, cfg.Data.CloseColumn)
	col := collector.NewCollector(source, series.NewLoader(cfg.Data.DateLayout))
	m := metrics.New()

	runner := dashboard.NewRunner(col, dashboard.FileModel(cfg.Model.Path, cfg.Features.Windows))
	runner.ModelPath = cfg.Model.Path
	runner.Windows = cfg.Features.Windows
	runner.Lookback = cfg.Features.Lookback
	runner.Title = cfg.Display.Title
	runner.Chart = chart.Options{Currency: cfg.Display.Currency}
	runner.Metrics = m

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The startup run checks both input artifacts before anything is served.
	rep, err := runner.Run(ctx)
	if recErr := rec.RecordRun(dashboard.RunRecord(dashboard.TriggerStartup, rep, err)); recErr != nil {
		log.Error().Err(recErr).Msg("record startup run")
	}
	if err != nil {
		log.Fatal().Err(err).Str("kind", dashboard.ErrorLabel(err)).Msg("startup run failed")
	}
	logOutcome(rep)

	if cfg.Output.HTMLPath != "" {
		if err := writePage(cfg.Output.HTMLPath, rep); err != nil {
			log.Fatal().Err(err).Msg("write dashboard page")
		}
		log.Info().Str("path", cfg.Output.HTMLPath).Msg("dashboard page written")
	}

	longRunning := cfg.Server.ListenAddr != "" || cfg.Schedule.ReportCron != "" || cfg.TelegramEnabled()
	if !longRunning {
		return
	}

	// Init Telegram notifier
	var tn *notifier.TelegramNotifier
	var sender scheduler.Sender
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, runner, sender, rec)
	if cfg.Schedule.ReportCron != "" {
		if err := sched.RegisterReport(cfg.Schedule.ReportCron); err != nil {
			log.Fatal().Err(err).Msg("register cron task")
		}
		sched.Start()
		defer sched.Stop()
	}

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("Telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing report task now")
		go sched.RunNow(dashboard.TriggerStartup)
	}

	if cfg.Server.ListenAddr != "" {
		srv := dashboard.NewServer(runner, rec, m, cfg.Display.Title)
		if err := srv.ListenAndServe(ctx, cfg.Server.ListenAddr); err != nil {
			log.Error().Err(err).Msg("dashboard server")
		}
	} else {
		log.Info().Msg("StockLens is running. Press Ctrl+C to stop.")
		<-ctx.Done()
	}

	log.Info().Msg("StockLens stopped")
}

func logOutcome(rep *dashboard.Report) {
	switch rep.Outcome.Status {
	case dashboard.StatusPredicted:
		log.Info().
			Time("input_date", rep.Outcome.Input.Row.Date).
			Str("predicted", rep.Currency+rep.Outcome.Rounded.StringFixed(2)).
			Msg("predicted next closing price")
	case dashboard.StatusInsufficient:
		log.Warn().Msg(dashboard.InsufficientMessage)
	default:
		log.Error().Err(rep.Outcome.Err).Msg("prediction error")
	}
}

func writePage(path string, rep *dashboard.Report) error {
	var buf bytes.Buffer
	if err := dashboard.RenderPage(&buf, rep); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
