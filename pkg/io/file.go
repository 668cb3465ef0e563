package io

import (
	"context"
	"time"

	"github.com/matzehuels/pixelgraph/pkg/graph"
	"github.com/matzehuels/pixelgraph/pkg/observability"
)

// Load reads the graph file at path with [ImportJSON] and reports the load
// to the registered graph hooks.
func Load(ctx context.Context, path string) (*graph.Graph, error) {
	start := time.Now()
	g, err := ImportJSON(path)
	var nodes, edges int
	if g != nil {
		nodes, edges = g.NodeCount(), g.EdgeCount()
	}
	observability.Graph().OnGraphLoad(ctx, path, nodes, edges, time.Since(start), err)
	return g, err
}

// Save writes g to path with [ExportJSON] and reports the write to the
// registered graph hooks.
func Save(ctx context.Context, g *graph.Graph, path string) error {
	start := time.Now()
	err := ExportJSON(g, path)
	observability.Graph().OnGraphSave(ctx, path, g.NodeCount(), g.EdgeCount(), time.Since(start), err)
	return err
}
