package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	pgio "github.com/matzehuels/pixelgraph/pkg/io"
	"github.com/matzehuels/pixelgraph/pkg/plugin"
	"github.com/matzehuels/pixelgraph/pkg/plugin/imageplugin"
)

type loadMaskOpts struct {
	graph    string // input graph file
	image    string // mask image
	property string // boolean property to fill
	output   string // graph file to write, defaults to graph
}

// loadMaskCommand creates the load-mask command that fills a selection from a mask image.
func (c *CLI) loadMaskCommand() *cobra.Command {
	var opts loadMaskOpts

	cmd := &cobra.Command{
		Use:     "load-mask",
		Short:   "Fill a boolean property from a mask image",
		Long:    `Select the nodes whose pixel in the mask image is not black. The image must have the dimensions of the graph.`,
		Example: `  pixelgraph load-mask -g cells.json -i mask.png -o masked.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("property") {
				opts.property = c.config.Export.Property
			}
			if opts.output == "" {
				opts.output = opts.graph
			}
			return c.runLoadMask(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.graph, "graph", "g", "", "input graph file")
	cmd.Flags().StringVarP(&opts.image, "image", "i", "", "mask image file")
	cmd.Flags().StringVarP(&opts.property, "property", "p", imageplugin.DefaultSelection, "boolean property to fill")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output graph file (default: overwrite input)")
	_ = cmd.MarkFlagRequired("graph")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func (c *CLI) runLoadMask(ctx context.Context, out io.Writer, opts loadMaskOpts) error {
	g, err := pgio.Load(ctx, opts.graph)
	if err != nil {
		return err
	}
	sel, err := g.BooleanProperty(opts.property)
	if err != nil {
		return err
	}

	ds, err := plugin.DefaultParameters(imageplugin.LoadMask, g)
	if err != nil {
		return err
	}
	ds.Set(imageplugin.ParamImage, opts.image)
	ds.Set(imageplugin.ParamProperty, sel)

	if err := c.applyWithSpinner(ctx, g, imageplugin.LoadMask, ds, "Loading "+opts.image); err != nil {
		return err
	}
	if err := pgio.Save(ctx, g, opts.output); err != nil {
		return err
	}

	printSuccess(out, "Selected %d of %d nodes in %s", sel.Count(g), g.NodeCount(), StyleHighlight.Render(opts.property))
	printFile(out, opts.output)
	return nil
}
