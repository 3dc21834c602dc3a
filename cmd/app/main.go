package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowex/internal/app"
	"flowex/internal/engine"
	"flowex/internal/infra/feed"
	"flowex/internal/infra/report"
	"flowex/internal/server"
	"flowex/internal/service"
)

func main() {
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := bootstrap.Config
	exchange := service.NewExchange(cfg.Instruments(), bootstrap.Store)

	if cfg.Feed.InputPath != "" {
		if err := runBatch(ctx, exchange, cfg.Feed.InputPath, cfg.Feed.ReportPath); err != nil {
			slog.Error("batch run failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	if !cfg.Server.Enabled {
		return
	}

	srv := server.New(exchange, bootstrap.Store, "*")
	httpServer := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: srv.Routes(),
	}

	go func() {
		slog.Info("exchange server listening", slog.String("addr", cfg.Server.ListenAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", slog.Any("error", err))
	}
}

// runBatch processes one order file and writes the execution report.
func runBatch(ctx context.Context, exchange *service.Exchange, inputPath, reportPath string) error {
	source, err := feed.OpenCSV(inputPath)
	if err != nil {
		return err
	}
	defer source.Close()

	var sinks []engine.Reporter
	if reportPath != "" {
		writer, err := report.CreateCSVFile(reportPath)
		if err != nil {
			return err
		}
		defer writer.Close()
		sinks = append(sinks, writer)
	}

	result, err := exchange.Run(ctx, source, inputPath, sinks...)
	if err != nil {
		return err
	}

	slog.Info("batch complete",
		slog.String("session_id", result.Session.ID),
		slog.Int("orders", result.Session.OrdersProcessed),
		slog.Int("reports", result.Session.ReportsEmitted),
		slog.Duration("elapsed", result.Session.FinishedAt.Sub(result.Session.StartedAt)))
	return nil
}
