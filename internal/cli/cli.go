package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tilequery/internal/render"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Config is the parsed command line.
type Config struct {
	// AreaPaths are files or directories of .hcl/.yaml area files. Empty
	// means a generated dungeon.
	AreaPaths []string
	// Map restricts the world to the named map.
	Map   string
	Seed  int64
	Theme string
	// Query is the expression the explorer starts with.
	Query     string
	LogLevel  string
	LogFormat string
	// LogFile receives logs instead of stderr. The local explorer discards
	// logs when it is empty, since stderr is the screen.
	LogFile string

	// SSH server.
	Port    int
	HostKey string

	// HTTP API.
	Addr string
}

const usage = `
%[1]s - try tile queries against roguelike maps.

Usage:
  %[1]s [options] [AREA_PATH ...]

Arguments:
  AREA_PATH
    An .hcl or .yaml area file, or a directory of them. Without any, a
    dungeon is generated from --seed.

Options:
`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(program string, args []string, output io.Writer) (*Config, bool, error) {
	slog.Debug("CLI parser started.", "program", program)
	flagSet := flag.NewFlagSet(program, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintf(output, usage, program)
		flagSet.PrintDefaults()
	}

	areasFlag := flagSet.String("areas", "", "Comma-separated area files or directories.")
	mapFlag := flagSet.String("map", "", "Only load the named map.")
	seedFlag := flagSet.Int64("seed", 1, "Seed for the generated dungeon and query shuffles.")
	themeFlag := flagSet.String("theme", "emoji", "Glyph theme. Options: 'emoji' or 'ascii'.")
	queryFlag := flagSet.String("query", "", "Initial query expression.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFileFlag := flagSet.String("log-file", "", "Write logs to this file instead of stderr.")
	portFlag := flagSet.Int("port", 2222, "SSH server port.")
	keyFlag := flagSet.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent).")
	addrFlag := flagSet.String("addr", ":8080", "HTTP API listen address.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	var paths []string
	for _, p := range strings.Split(*areasFlag, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	paths = append(paths, flagSet.Args()...)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	theme := strings.ToLower(*themeFlag)
	if _, ok := render.Themes[theme]; !ok {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid theme %q: must be 'emoji' or 'ascii'", *themeFlag)}
	}

	if *portFlag <= 0 || *portFlag > 65535 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid port %d", *portFlag)}
	}

	cfg := &Config{
		AreaPaths: paths,
		Map:       *mapFlag,
		Seed:      *seedFlag,
		Theme:     theme,
		Query:     *queryFlag,
		LogLevel:  logLevel,
		LogFormat: logFormat,
		LogFile:   *logFileFlag,
		Port:      *portFlag,
		HostKey:   *keyFlag,
		Addr:      *addrFlag,
	}
	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
