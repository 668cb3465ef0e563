package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports plugin runs and graph file access at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnApplyStart(_ context.Context, name string) {
	h.logger.Debug("Plugin started", "plugin", name)
}

func (h logHooks) OnApplyComplete(_ context.Context, name string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Plugin failed", "plugin", name, "elapsed", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("Plugin finished", "plugin", name, "elapsed", d.Round(time.Millisecond))
}

func (h logHooks) OnGraphLoad(_ context.Context, path string, nodes, edges int, d time.Duration, err error) {
	h.graphEvent("Loaded graph", path, nodes, edges, d, err)
}

func (h logHooks) OnGraphSave(_ context.Context, path string, nodes, edges int, d time.Duration, err error) {
	h.graphEvent("Saved graph", path, nodes, edges, d, err)
}

func (h logHooks) graphEvent(msg, path string, nodes, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug(msg+" failed", "path", path, "err", err)
		return
	}
	h.logger.Debug(msg, "path", path, "nodes", nodes, "edges", edges, "elapsed", d.Round(time.Millisecond))
}
