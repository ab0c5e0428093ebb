package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"hotel-tracker/observability"
	"hotel-tracker/routes"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "8080", "listen port (overrides PORT)")
	return cmd
}

// serve runs the API until ctx is done, then drains in-flight requests.
func (a *app) serve(ctx context.Context) error {
	opts := routes.Options{
		Logger:         a.log.With("component", "http"),
		AllowedOrigins: a.cfg.AllowedOrigins(),
	}
	if a.cfg.TracingEnabled {
		shutdown, err := observability.InitTracer(serviceName, Version, os.Stderr)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				a.log.Warn("tracer shutdown failed", "error", err)
			}
		}()
		opts.ServiceName = serviceName
	}

	m, err := a.open(ctx)
	if err != nil {
		return err
	}

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := routes.SetupRouter(m, opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", a.cfg.Port),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.log.Info("server starting", "addr", srv.Addr, "backend", a.cfg.Backend)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutdown signal received, draining requests")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	a.log.Info("server stopped")
	return nil
}
