package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/basefigures/internal/config"
	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/JonMunkholm/basefigures/internal/decode"
	"github.com/JonMunkholm/basefigures/internal/logging"
	"github.com/JonMunkholm/basefigures/internal/submit"
	"github.com/JonMunkholm/basefigures/internal/web"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				slog.Error("failed to load configuration", "error", err)
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
			slog.Info("configuration loaded", "config", cfg.String())

			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on (overrides SERVER_PORT)")
	return cmd
}

// serve runs the server until SIGINT/SIGTERM, then drains in-flight requests.
func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	sink, closeSink, err := submit.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to create sink", "kind", cfg.Sink.Kind, "error", err)
		return err
	}
	defer closeSink()

	service := core.NewService(decode.NewExcel(), sink,
		core.WithMaxFileSize(cfg.Upload.MaxFileSize),
		core.WithDecodeLimiter(core.NewDecodeLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWait)),
	)
	server := web.NewServer(service, cfg)

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr(), "sink", cfg.Sink.Kind)
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		return err
	}

	<-stopped
	slog.Info("server stopped")
	return nil
}
