package main

import (
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

func main() {
	// Bootstrap logging at INFO so config loading itself is visible;
	// reconfigured once the config is known.
	setupLogging(slog.LevelInfo, false)

	if err := Execute(); err != nil {
		slog.Error("Run failed", "error", err)
		os.Exit(exitCodeFor(err))
	}
}

// setupLogging installs the default logger: human-readable text on
// stdout, JSON errors on stderr for collectors. Quiet mode drops the
// text stream entirely.
func setupLogging(level slog.Level, quiet bool) {
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	var handler slog.Handler = jsonHandler
	if !quiet {
		textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
		handler = slogmulti.Fanout(textHandler, jsonHandler)
	}
	slog.SetDefault(slog.New(handler))
}
