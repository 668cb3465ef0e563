package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelgraph/pkg/errors"
	"github.com/matzehuels/pixelgraph/pkg/graph"
	pgio "github.com/matzehuels/pixelgraph/pkg/io"
	"github.com/matzehuels/pixelgraph/pkg/plugin"
	"github.com/matzehuels/pixelgraph/pkg/plugin/imageplugin"
)

// exportDone is printed after every export attempt, failed or not.
const exportDone = "Export done"

// Exporter is the graph library surface used by the export commands.
type Exporter interface {
	Load(ctx context.Context, path string) (*graph.Graph, error)
	BooleanProperty(g *graph.Graph, name string) (*graph.BooleanProperty, error)
	DefaultParameters(name string, g *graph.Graph) (plugin.DataSet, error)
	Apply(ctx context.Context, g *graph.Graph, name string, ds plugin.DataSet) error
}

// libraryExporter implements Exporter with pkg/io and a plugin registry.
type libraryExporter struct {
	registry *plugin.Registry
	opts     []plugin.Option
}

// NewExporter returns an Exporter running plugins from r with opts.
func NewExporter(r *plugin.Registry, opts ...plugin.Option) Exporter {
	return &libraryExporter{registry: r, opts: opts}
}

func (e *libraryExporter) Load(ctx context.Context, path string) (*graph.Graph, error) {
	return pgio.Load(ctx, path)
}

func (e *libraryExporter) BooleanProperty(g *graph.Graph, name string) (*graph.BooleanProperty, error) {
	return g.BooleanProperty(name)
}

func (e *libraryExporter) DefaultParameters(name string, g *graph.Graph) (plugin.DataSet, error) {
	return e.registry.DefaultParameters(name, g)
}

func (e *libraryExporter) Apply(ctx context.Context, g *graph.Graph, name string, ds plugin.DataSet) error {
	return e.registry.Apply(ctx, g, name, ds, e.opts...)
}

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	graph    string // input graph file
	property string // boolean property to export
	output   string // output image path
}

// exportCommand creates the export command under the given name. It is
// both "pixelgraph export" and the standalone export-selection command.
func (c *CLI) exportCommand(use string) *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   use,
		Short: "Export a boolean property of a graph as a binary image",
		Long: `Export a boolean property of a grid graph as a binary image.

Selected pixels are written as 255, the others as 0. Graphs deeper than one
slice are written as a numbered series; use a printf verb such as %03d in the
output name to choose the numbering.`,
		Example: fmt.Sprintf("  %s -g graph.json -o selection.png\n  %s -g graph.json -p mask -o slices/%%03d.png", use, use),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("property") {
				opts.property = c.config.Export.Property
			}
			return runExport(cmd.Context(), cmd.OutOrStdout(), c.Exporter, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.graph, "graph", "g", "", "input graph file")
	cmd.Flags().StringVarP(&opts.property, "property", "p", imageplugin.DefaultSelection, "property to export")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output image file")
	_ = cmd.MarkFlagRequired("graph")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// runExport loads the graph, configures "Export image" for the selection
// and runs it. A failed export is reported on out and does not fail the
// command; load and lookup errors do.
func runExport(ctx context.Context, out io.Writer, ex Exporter, opts exportOpts) error {
	logger := loggerFromContext(ctx)

	g, err := ex.Load(ctx, opts.graph)
	if err != nil {
		return err
	}
	dir, pattern, err := splitOutput(opts.output)
	if err != nil {
		return err
	}
	sel, err := ex.BooleanProperty(g, opts.property)
	if err != nil {
		return err
	}

	ds, err := ex.DefaultParameters(imageplugin.ExportImage, g)
	if err != nil {
		return err
	}
	ds.Set(imageplugin.ParamProperty, sel)
	ds.Set(imageplugin.ParamExportDir, dir)
	ds.Set(imageplugin.ParamExportPattern, pattern)

	logger.Debug("Exporting selection", "property", opts.property, "dir", dir, "pattern", pattern)
	if err := ex.Apply(ctx, g, imageplugin.ExportImage, ds); err != nil {
		fmt.Fprintln(out, errors.UserMessage(err))
	}
	fmt.Fprintln(out, exportDone)
	return nil
}

// splitOutput resolves path to an absolute path with symlinks evaluated
// and splits it into directory and file name. Symlinks are resolved before
// ".." is applied, so "link/../x" lands next to the link target.
func splitOutput(path string) (dir, file string, err error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve output path %q", path)
		}
		path = wd + string(filepath.Separator) + path
	}
	dir, file = filepath.Split(realpath(path))
	return filepath.Clean(dir), file, nil
}

// realpath evaluates the symlinks of the longest existing prefix of the
// absolute path p. The remaining components are applied lexically.
func realpath(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	dir, base := filepath.Split(p)
	dir = strings.TrimRight(dir, string(filepath.Separator))
	if dir == "" {
		dir = filepath.VolumeName(p) + string(filepath.Separator)
	}
	if dir == p {
		return filepath.Clean(p)
	}
	return filepath.Join(realpath(dir), base)
}
