// tilequery opens the query explorer in the local terminal.
//
// Usage:
//
//	tilequery [--seed 7] [--theme ascii] [AREA_PATH ...]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/gdamore/tcell/v2"

	"tilequery/internal/cli"
	"tilequery/internal/ctxlog"
	"tilequery/internal/explorer"
	"tilequery/internal/query"
	"tilequery/internal/render"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, exit, err := cli.Parse("tilequery", args, os.Stderr)
	if exit {
		return 0
	}
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			return exitErr.Code
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	// The terminal belongs to the explorer; logs go to a file or nowhere.
	w, closeLog, err := cli.LogWriter(cfg.LogFile, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()
	logger := cli.NewLogger(cfg.LogLevel, cfg.LogFormat, w)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	world, err := cli.LoadWorld(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	engine := query.New(query.WithLogger(logger), query.WithRand(rand.New(rand.NewSource(cfg.Seed))))
	x, err := explorer.New(screen, engine, world.Maps, explorer.Options{
		Theme:  render.ThemeByName(cfg.Theme),
		Areas:  world.Areas,
		Logger: logger,
		Query:  cfg.Query,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer screen.Fini()
	x.Run()
	return 0
}
