package dashboard

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"StockLens/internal/metrics"
	"StockLens/internal/recorder"
)

// Server serves the dashboard over HTTP. Every page view is a fresh run.
type Server struct {
	Runner   *Runner
	Recorder recorder.Recorder
	Metrics  *metrics.Metrics
	Title    string
}

// NewServer creates a Server. A nil recorder records nothing.
func NewServer(runner *Runner, rec recorder.Recorder, m *metrics.Metrics, title string) *Server {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Server{Runner: runner, Recorder: rec, Metrics: m, Title: title}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if s.Metrics != nil {
		mux.Handle("/metrics", s.Metrics.Handler())
	}
	return mux
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rep, err := s.Runner.Run(r.Context())
	if recErr := s.Recorder.RecordRun(RunRecord(TriggerHTTP, rep, err)); recErr != nil {
		log.Error().Err(recErr).Msg("record run")
	}

	var buf bytes.Buffer
	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
		if renderErr := RenderError(&buf, s.Title, err); renderErr != nil {
			http.Error(w, err.Error(), status)
			return
		}
	} else if renderErr := RenderPage(&buf, rep); renderErr != nil {
		log.Error().Err(renderErr).Msg("render page")
		http.Error(w, "render page: "+renderErr.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("dashboard listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("dashboard shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
