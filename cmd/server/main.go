// tilequery-server serves the query explorer over SSH. Every connection gets
// its own copy of the world, so spawns in one session do not show up in
// another. Build:
//
//	go build -o tilequery-server ./cmd/server
//
// Usage:
//
//	./tilequery-server [--port 2222] [--key server_host_key] [AREA_PATH ...]
//
// Connect:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"os"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"

	"tilequery/internal/cli"
	"tilequery/internal/ctxlog"
	"tilequery/internal/explorer"
	"tilequery/internal/query"
	"tilequery/internal/render"
	internalssh "tilequery/internal/ssh"
)

func main() {
	cfg, exit, err := cli.Parse("tilequery-server", os.Args[1:], os.Stderr)
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
	ctx := ctxlog.WithLogger(context.Background(), logger)

	// Fail at startup rather than per session if the world cannot load.
	if _, err := cli.LoadWorld(ctx, cfg); err != nil {
		logger.Error("Failed to load world.", "error", err)
		os.Exit(1)
	}

	signer, err := loadOrCreateHostKey(cfg.HostKey, logger)
	if err != nil {
		logger.Error("Host key unavailable.", "error", err)
		os.Exit(1)
	}

	engine := query.New(query.WithLogger(logger))
	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: func(s gossh.Session) {
			handleSession(ctx, s, cfg, engine)
		},
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication. Add gossh.PublicKeyAuth or
		// gossh.PasswordAuth options for real auth.
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info("SSH explorer listening.", "port", cfg.Port)
	logger.Info(fmt.Sprintf("Connect with:  ssh -t -p %d -o StrictHostKeyChecking=no localhost", cfg.Port))
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("SSH server stopped.", "error", err)
		os.Exit(1)
	}
}

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// for the duration of the connection so the SSH session stays open.
func handleSession(ctx context.Context, s gossh.Session, cfg *cli.Config, engine *query.Engine) {
	logger := ctxlog.FromContext(ctx).With("user", s.User(), "remote", s.RemoteAddr().String())
	ctx = ctxlog.WithLogger(ctx, logger)

	screen, err := internalssh.NewScreen(s)
	if err != nil {
		if errors.Is(err, internalssh.ErrNoPTY) {
			fmt.Fprintf(s, "The explorer needs a PTY. Connect with: ssh -t -p %d <host>\n", cfg.Port)
		} else {
			fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		}
		return
	}
	defer screen.Fini()

	world, err := cli.LoadWorld(ctx, cfg)
	if err != nil {
		logger.Error("Failed to load world for session.", "error", err)
		return
	}
	defer func() {
		for _, m := range world.Maps {
			engine.Cache().Forget(m)
		}
	}()

	x, err := explorer.New(screen, engine, world.Maps, explorer.Options{
		Theme:  render.ThemeByName(cfg.Theme),
		Areas:  world.Areas,
		Logger: logger,
		Query:  cfg.Query,
	})
	if err != nil {
		logger.Error("Explorer setup failed.", "error", err)
		return
	}
	logger.Info("Session started.")
	x.Run()
	logger.Info("Session ended.")
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("Loaded host key.", "path", path)
			return signer, nil
		}
	}

	logger.Info("Generating new ed25519 host key.", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "tilequery server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
			logger.Warn("Could not save host key.", "path", path, "error", err)
		}
	}
	return signer, nil
}
