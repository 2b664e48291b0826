package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wrenhollow/reel/internal/server"
	"github.com/wrenhollow/reel/internal/shared"
)

// Serve runs the local stream proxy until the context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := cmd.Int("port")
	if port == 0 {
		port = r.config.Server.Port
	}

	bearer := func() (string, error) {
		return r.manager.AccessToken(ctx)
	}

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(server.NewStreamHandler(r.client.BaseURL(), bearer, r.httpClient, r.logger))
	router.Handle(http.MethodGet, "/health", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{Addr: addr, Handler: router}

	// Token renewal keeps long playback sessions alive.
	renewCtx, cancelRenew := context.WithCancel(ctx)
	defer cancelRenew()
	go r.manager.RunRenewal(renewCtx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	r.logger.Info("stream proxy listening", "addr", addr)
	r.writePlain("Streaming at http://%s/stream/{video-id}\n", addr)
	r.writePlain("Press Ctrl+C to stop\n")

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
