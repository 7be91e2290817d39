package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Run maps the routes and serves until ctx is cancelled, then drains
// in-flight requests.
func (srv *HTTPServer) Run(ctx context.Context) error {
	srv.mapHandlers()

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", srv.port),
		Handler: srv.gin,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	srv.logger.Infof(ctx, "internal.httpserver.Run: listening on port %d", srv.port)

	select {
	case err := <-errCh:
		srv.logger.Errorf(ctx, "internal.httpserver.Run.ListenAndServe: %v", err)
		return err
	case <-ctx.Done():
	}

	srv.logger.Infof(ctx, "internal.httpserver.Run: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.Run.Shutdown: %v", err)
		return err
	}
	return nil
}
