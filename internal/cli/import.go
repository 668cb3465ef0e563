package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelgraph/pkg/errors"
	"github.com/matzehuels/pixelgraph/pkg/graph"
	pgio "github.com/matzehuels/pixelgraph/pkg/io"
	"github.com/matzehuels/pixelgraph/pkg/plugin"
	"github.com/matzehuels/pixelgraph/pkg/plugin/imageplugin"
)

// importOpts holds the command-line flags for the import command.
type importOpts struct {
	input        string  // image file
	output       string  // graph file to write
	propType     string  // Color, Integer, Double or Boolean
	name         string  // property name
	radius       float64 // neighborhood radius, 0 for no edges
	neighborhood string  // Circular or Square
	grayscale    bool    // store colors as gray
}

// importCommand creates the import command that builds a grid graph from an image.
func (c *CLI) importCommand() *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Build a grid graph from an image",
		Long: `Build a grid graph with one node per pixel and store the pixel values in a
property. Pixels closer than --radius are connected by edges.`,
		Example: `  pixelgraph import -i cells.png -o cells.json --type Boolean --radius 1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyImportConfig(cmd, &opts)
			return c.runImport(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "input image file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output graph file (.json or .json.gz)")
	cmd.Flags().StringVarP(&opts.propType, "type", "t", imageplugin.PropertyTypeColor, "property type: Color, Integer, Double, Boolean")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "data", "property name")
	cmd.Flags().Float64VarP(&opts.radius, "radius", "r", 0, "neighborhood radius")
	cmd.Flags().StringVar(&opts.neighborhood, "neighborhood", string(graph.Circular), "neighborhood type: Circular, Square")
	cmd.Flags().BoolVar(&opts.grayscale, "grayscale", false, "convert colors to grayscale")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// applyImportConfig fills flags that were not set explicitly from the config file.
func (c *CLI) applyImportConfig(cmd *cobra.Command, opts *importOpts) {
	flags := cmd.Flags()
	if !flags.Changed("type") {
		opts.propType = c.config.Import.Type
	}
	if !flags.Changed("name") {
		opts.name = c.config.Import.Name
	}
	if !flags.Changed("radius") {
		opts.radius = c.config.Import.Radius
	}
	if !flags.Changed("neighborhood") {
		opts.neighborhood = c.config.Import.Neighborhood
	}
}

func (c *CLI) runImport(ctx context.Context, out io.Writer, opts importOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g := graph.New()
	ds, err := plugin.DefaultParameters(imageplugin.ImportImage, g)
	if err != nil {
		return err
	}
	ds.Set(imageplugin.ParamFile, opts.input)
	ds.Set(imageplugin.ParamPropertyType, opts.propType)
	ds.Set(imageplugin.ParamPropertyName, opts.name)
	ds.Set(imageplugin.ParamNeighborhoodRadius, opts.radius)
	ds.Set(imageplugin.ParamNeighborhoodType, opts.neighborhood)
	ds.Set(imageplugin.ParamGrayscale, opts.grayscale)

	if err := c.applyWithSpinner(ctx, g, imageplugin.ImportImage, ds, "Importing "+opts.input); err != nil {
		return err
	}
	if err := pgio.Save(ctx, g, opts.output); err != nil {
		return err
	}

	dims, _ := g.Dimensions()
	prog.done(fmt.Sprintf("Imported %s grid", dims))
	printSuccess(out, "Imported %s", opts.input)
	printStats(out, g.NodeCount(), g.EdgeCount())
	printFile(out, opts.output)
	printNextStep(out, "Inspect the graph", "pixelgraph info -g "+opts.output)
	return nil
}

// applyWithSpinner runs a plugin of the default registry while a spinner
// shows its progress on stderr.
func (c *CLI) applyWithSpinner(ctx context.Context, g *graph.Graph, name string, ds plugin.DataSet, msg string) error {
	spinner := newSpinner(ctx, c.errOut, msg)
	spinner.Start()
	err := plugin.Apply(ctx, g, name, ds, plugin.WithProgress(spinner), plugin.WithLogger(c.Logger))
	spinner.Stop()
	if err != nil {
		if errors.Is(err, errors.ErrCodeInvalidParameter) {
			return fmt.Errorf("%s: %s", name, errors.UserMessage(err))
		}
		return err
	}
	return nil
}
