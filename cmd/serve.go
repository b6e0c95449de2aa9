package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikogura/resume-regen/pkg/regen"
	"github.com/nikogura/resume-regen/pkg/server"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the regeneration HTTP API",
	Long: `Serve the regeneration HTTP API.

Endpoints:
  POST    /api/regenerate   regenerate one section
  OPTIONS /api/regenerate   CORS preflight
  GET     /api/limits       static token limits
  GET     /healthz          liveness

Example:
  resume-regen serve
  resume-regen serve --addr :8080`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :5001)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var svc *regen.Service
	svc, err = buildService(cfg, logger)
	if err != nil {
		return err
	}

	var srv *server.Server
	srv, err = server.New(svc, cfg.Server.AllowedOrigins, logger)
	if err != nil {
		err = errors.Wrap(err, "failed to create server")
		return err
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", addr), zap.Strings("allowed_origins", cfg.Server.AllowedOrigins))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			err = errors.Wrap(err, "server failed")
			return err
		}
		err = nil
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err = httpServer.Shutdown(shutdownCtx)
	if err != nil {
		err = errors.Wrap(err, "graceful shutdown failed")
		return err
	}

	return err
}
