package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ganot/activitylog/internal/app"
	"github.com/ganot/activitylog/internal/config"
	"github.com/ganot/activitylog/internal/domain/activity"
	"github.com/ganot/activitylog/internal/logging"
	"github.com/ganot/activitylog/internal/mcp"
	"github.com/ganot/activitylog/internal/metrics"
	"github.com/ganot/activitylog/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.TransportStdio {
		logWriter = os.Stderr
	}
	logger, closeLog, err := logging.New(logWriter, cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	repo, closeRepo, err := app.OpenRepository(cfg.Store)
	if err != nil {
		return err
	}
	defer closeRepo()

	var metricsHandler http.Handler
	var recorder activity.Metrics
	if cfg.Metrics.Enabled {
		reg, err := metrics.NewRegistry()
		if err != nil {
			return err
		}
		r, err := metrics.NewRecorder(reg, cfg.Metrics.Namespace)
		if err != nil {
			return err
		}
		recorder = r
		metricsHandler = metrics.Handler(reg)
	}

	activitySvc := app.NewService(cfg, repo, logger, recorder)
	mcpServer := mcp.NewServer(mcp.Config{
		Activity: activitySvc,
		Logger:   logger,
	})

	logger.Info("activity store ready", "backend", cfg.Store.Backend, "collection", cfg.Store.Collection)

	if cfg.Transport.Mode == config.TransportStdio {
		return runStdioMode(logger, mcpServer)
	}
	return runHTTPMode(logger, cfg, mcp.NewHandler(activitySvc), mcpServer, metricsHandler)
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(logger *slog.Logger, cfg config.Config, rpc transport.RPCHandler, mcpServer *sdkmcp.Server, metricsHandler http.Handler) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)

	opts := transport.Options{
		MCP:     mcpHandler,
		Metrics: metricsHandler,
		Logger:  logger,
	}
	if cfg.Auth.Enabled {
		opts.Auth = transport.AuthMiddleware(transport.StaticToken{Token: cfg.Auth.Token})
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewServer(rpc, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "auth", cfg.Auth.Enabled, "metrics", metricsHandler != nil)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return waitForShutdown(logger, httpServer, errCh)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, errCh <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
