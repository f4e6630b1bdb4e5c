package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDefaults(t *testing.T) {
	cfg, exit, err := Parse("tilequery", nil, &bytes.Buffer{})
	if err != nil || exit {
		t.Fatalf("Parse = %v, %v", exit, err)
	}
	want := &Config{
		Seed:      1,
		Theme:     "emoji",
		LogLevel:  "info",
		LogFormat: "text",
		Port:      2222,
		HostKey:   "server_host_key",
		Addr:      ":8080",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAreaPaths(t *testing.T) {
	cfg, _, err := Parse("tilequery", []string{"--areas", "a.hcl, b", "-theme", "ASCII", "c.yaml"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a.hcl", "b", "c.yaml"}, cfg.AreaPaths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	if cfg.Theme != "ascii" {
		t.Errorf("Theme = %q, want ascii", cfg.Theme)
	}
}

func TestParseHelp(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse("tilequery", []string{"-h"}, &out)
	if err != nil || !exit || cfg != nil {
		t.Fatalf("Parse(-h) = %v, %v, %v", cfg, exit, err)
	}
	if !strings.Contains(out.String(), "AREA_PATH") {
		t.Errorf("usage text missing: %q", out.String())
	}
}

func TestParseInvalid(t *testing.T) {
	cases := [][]string{
		{"--log-format", "xml"},
		{"--log-level", "loud"},
		{"--theme", "neon"},
		{"--port", "0"},
		{"--nope"},
	}
	for _, args := range cases {
		_, _, err := Parse("tilequery", args, &bytes.Buffer{})
		var exitErr *ExitError
		if !errors.As(err, &exitErr) || exitErr.Code != 2 {
			t.Errorf("Parse(%q) error = %v, want ExitError code 2", args, err)
		}
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestLoadWorldGenerated(t *testing.T) {
	w, err := LoadWorld(context.Background(), &Config{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Maps) != 1 || w.Maps[0].Name != "dungeon" {
		t.Fatalf("maps = %v", w.Maps)
	}
	if len(w.Areas) != len(w.Maps[0].Rooms) {
		t.Errorf("got %d areas for %d rooms", len(w.Areas), len(w.Maps[0].Rooms))
	}
}

func TestLoadWorldFromFiles(t *testing.T) {
	dir := t.TempDir()
	content := `
map "a" { rows = ["...", "..."] }
map "b" { rows = ["#.#"] }
area "crates" {
  query = "ALL, PLACEABLE"
  count = 1
}
`
	if err := os.WriteFile(filepath.Join(dir, "world.hcl"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := LoadWorld(context.Background(), &Config{AreaPaths: []string{dir}})
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Maps) != 2 || len(w.Areas) != 2 {
		t.Fatalf("got %d maps and %d areas, want 2 and 2", len(w.Maps), len(w.Areas))
	}

	w, err = LoadWorld(context.Background(), &Config{AreaPaths: []string{dir}, Map: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Maps) != 1 || w.Maps[0].Name != "b" {
		t.Errorf("Map filter kept %v", w.Maps)
	}

	if _, err := LoadWorld(context.Background(), &Config{AreaPaths: []string{dir}, Map: "c"}); err == nil {
		t.Error("unknown map name should fail")
	}
}

func TestLogWriter(t *testing.T) {
	var fallback bytes.Buffer
	w, closeFn, err := LogWriter("", &fallback)
	if err != nil || w != &fallback {
		t.Fatalf("LogWriter(\"\") = %v, %v", w, err)
	}
	if err := closeFn(); err != nil {
		t.Error(err)
	}

	path := filepath.Join(t.TempDir(), "tq.log")
	w, closeFn, err = LogWriter(path, &fallback)
	if err != nil {
		t.Fatal(err)
	}
	NewLogger("info", "text", w).Info("to file")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q, %v", data, err)
	}
}
