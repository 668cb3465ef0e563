// Package cli implements the pixelgraph and export-selection command-line
// interfaces.
//
// The commands load graph files, run the image plugins of
// [github.com/matzehuels/pixelgraph/pkg/plugin/imageplugin] on them and
// write the results back to disk. The CLI is built using cobra and logs
// through charmbracelet/log.
//
// # Commands
//
// export-selection is a single command that rasterizes a boolean property
// of a graph as a binary image. pixelgraph bundles the same export with:
//   - import: Build a grid graph from an image
//   - load-mask: Fill a selection from a mask image
//   - nodelink: Draw the graph as a node-link diagram
//   - info: Print dimensions, counts and properties of a graph file
//   - plugins: List registered plugins and their parameters
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. Logs go to stderr; stdout carries the
// command output.
//
// # Configuration
//
// Defaults for flags are read from a TOML file, see [Config].
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Imported 640x480x1 grid (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
