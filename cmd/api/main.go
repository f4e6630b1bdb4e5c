// tilequery-api serves tile queries over HTTP.
//
// Usage:
//
//	tilequery-api [--addr :8080] [AREA_PATH ...]
//
// Try:
//
//	curl -d '{"expression":"AREA_WH 0 0 10 10, PLACEABLE","limit":5}' localhost:8080/api/maps/dungeon/query
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tilequery/internal/api"
	"tilequery/internal/cli"
	"tilequery/internal/ctxlog"
	"tilequery/internal/query"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, exit, err := cli.Parse("tilequery-api", os.Args[1:], os.Stderr)
	if exit {
		return
	}
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	w, closeLog, err := cli.LogWriter(cfg.LogFile, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger := cli.NewLogger(cfg.LogLevel, cfg.LogFormat, w)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = ctxlog.WithLogger(ctx, logger)

	world, err := cli.LoadWorld(ctx, cfg)
	if err != nil {
		logger.Error("Failed to load world.", "error", err)
		os.Exit(1)
	}

	engine := query.New(query.WithLogger(logger), query.WithRand(rand.New(rand.NewSource(cfg.Seed))))
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(engine, world.Maps, world.Areas, logger).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown failed.", "error", err)
		}
	}()

	logger.Info("HTTP API listening.", "addr", cfg.Addr, "maps", len(world.Maps))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("HTTP server stopped.", "error", err)
		os.Exit(1)
	}
}
