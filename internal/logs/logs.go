// Package logs builds the structured logger used by the command.
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mcncl/eqdata/internal/config"
	"github.com/mcncl/eqdata/internal/errors"
	slogmulti "github.com/samber/slog-multi"
)

// New returns a logger writing text records to w, and additionally to
// cfg.File when one is set. The returned close function releases the file.
func New(w io.Writer, cfg *config.Config) (*slog.Logger, func() error, error) {
	level := new(slog.LevelVar)
	level.Set(cfg.SlogLevel())
	opts := &slog.HandlerOptions{Level: level}

	handlers := []slog.Handler{
		slog.NewTextHandler(w, opts),
	}
	closer := func() error { return nil }

	if cfg.Log.File != "" {
		file, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.NewConfigError(fmt.Sprintf("failed to open log file '%s'", cfg.Log.File), err)
		}
		handlers = append(handlers, slog.NewJSONHandler(file, opts))
		closer = file.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
