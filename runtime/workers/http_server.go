package workers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// HTTPServerWorker serves the API until the context is canceled, then drains requests.
type HTTPServerWorker struct {
	log             *slog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

func NewHTTPServerWorker(log *slog.Logger, server *http.Server, shutdownTimeout time.Duration) *HTTPServerWorker {
	return &HTTPServerWorker{log: log, server: server, shutdownTimeout: shutdownTimeout}
}

func (w *HTTPServerWorker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		w.log.Info("HTTP server listening", "addr", w.server.Addr)
		errCh <- w.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
	defer cancel()
	if err := w.server.Shutdown(shutdownCtx); err != nil {
		w.log.Error("HTTP server shutdown failed", "error", err)
		return err
	}
	w.log.Info("HTTP server stopped")
	return nil
}
