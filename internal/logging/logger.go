package logging

import (
	"log/slog"
	"os"
)

// Setup installs the bootstrap logger: JSON to stdout only. Once the
// Postgres connection is up, main swaps in a MultiHandler that adds the
// PGHandler sink; on the memory store driver this stays the only handler.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
