package imageplugin

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pixelgraph/pkg/errors"
	"github.com/matzehuels/pixelgraph/pkg/graph"
	"github.com/matzehuels/pixelgraph/pkg/plugin"
)

// MaxNodeLinkNodes bounds the graphs handed to Graphviz.
const MaxNodeLinkNodes = 10000

// nodeLinkFormats maps output extensions to Graphviz formats. ".dot" writes
// the DOT source without running Graphviz.
var nodeLinkFormats = map[string]graphviz.Format{
	".svg": graphviz.SVG,
	".png": graphviz.PNG,
	".jpg": graphviz.JPG,
}

// exportNodeLink draws the graph as a node-link diagram. Nodes and edges
// where the boolean property is true are highlighted.
type exportNodeLink struct{}

func (exportNodeLink) Info() plugin.Info {
	return plugin.Info{Name: ExportNodeLink, Author: author, Date: "2025-01-10", Version: "1.0", Group: "File"}
}

func (exportNodeLink) Parameters() []plugin.Parameter {
	return []plugin.Parameter{
		{Name: ParamProperty, Kind: plugin.KindProperty, Default: DefaultSelection,
			Help: "The BooleanProperty to highlight (optional)."},
		{Name: ParamExportDir, Kind: plugin.KindDir, Default: "",
			Help: "Directory where the drawing will be created."},
		{Name: ParamExportPattern, Kind: plugin.KindString, Default: "graph.svg",
			Help: "Name of the drawing: .svg, .png, .jpg or .dot."},
	}
}

func (exportNodeLink) Run(ctx context.Context, pc *plugin.Context) error {
	dir, ok := pc.Params.String(ParamExportDir)
	if !ok {
		return plugin.MissingParameter(ParamExportDir)
	}
	pattern, ok := pc.Params.String(ParamExportPattern)
	if !ok {
		return plugin.MissingParameter(ParamExportPattern)
	}
	if dir == "" {
		return plugin.InvalidParameter("The %q parameter cannot be empty", ParamExportDir)
	}
	if err := errors.ValidateExportPattern(pattern); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, err, "The drawing cannot be exported")
	}

	var sel *graph.BooleanProperty
	if prop, ok := pc.Params.Property(ParamProperty); ok {
		if sel, ok = prop.(*graph.BooleanProperty); !ok {
			return plugin.InvalidParameter("%q must be a BooleanProperty", ParamProperty)
		}
	}

	if n := pc.Graph.NodeCount(); n > MaxNodeLinkNodes {
		return plugin.InvalidParameter("The graph is too large for a node-link drawing (%d nodes, max %d)", n, MaxNodeLinkNodes)
	}

	ext := strings.ToLower(filepath.Ext(pattern))
	dot := ToDOT(pc.Graph, sel)
	var data []byte
	if ext == ".dot" {
		data = []byte(dot)
	} else {
		format, ok := nodeLinkFormats[ext]
		if !ok {
			return errors.New(errors.ErrCodeUnsupported, "unsupported drawing format %q (use svg, png, jpg or dot)", ext)
		}
		pc.Progress.SetComment("Rendering with Graphviz")
		var err error
		if data, err = render(ctx, dot, format); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "The drawing cannot be exported")
		}
	}

	path := filepath.Join(dir, pattern)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "The drawing cannot be exported")
	}
	pc.Logger.Debug("Wrote node-link drawing", "path", path, "bytes", len(data))
	return nil
}

// ToDOT converts g to Graphviz DOT. Nodes are labelled with their index,
// or their pixel coordinates on grid graphs. Elements where sel is true are
// filled; sel may be nil.
func ToDOT(g *graph.Graph, sel *graph.BooleanProperty) string {
	dims, gridErr := g.Dimensions()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmt.Sprint(int(n))
		if gridErr == nil {
			x, y, z := dims.Position(n)
			label = fmt.Sprintf("%d,%d,%d", x, y, z)
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if sel != nil && sel.NodeValue(n) {
			attrs = append(attrs, "fillcolor=\"#e4572e\"", "fontcolor=white")
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		s, t := g.Ends(e)
		if sel != nil && sel.EdgeValue(e) {
			fmt.Fprintf(&buf, "  n%d -- n%d [color=\"#e4572e\", penwidth=2];\n", s, t)
			continue
		}
		fmt.Fprintf(&buf, "  n%d -- n%d;\n", s, t)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
