package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelgraph/pkg/graph"
	pgio "github.com/matzehuels/pixelgraph/pkg/io"
)

// infoCommand creates the info command that summarizes a graph file.
func (c *CLI) infoCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:     "info",
		Short:   "Show dimensions, counts and properties of a graph file",
		Example: `  pixelgraph info -g cells.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), cmd.OutOrStdout(), path)
		},
	}

	cmd.Flags().StringVarP(&path, "graph", "g", "", "input graph file")
	_ = cmd.MarkFlagRequired("graph")

	return cmd
}

func runInfo(ctx context.Context, out io.Writer, path string) error {
	g, err := pgio.Load(ctx, path)
	if err != nil {
		return err
	}

	printTitle(out, path)
	if dims, err := g.Dimensions(); err == nil {
		printKeyValue(out, "dimensions", dims.String())
	} else {
		printKeyValue(out, "dimensions", StyleDim.Render("none"))
	}
	printKeyValue(out, "nodes", StyleNumber.Render(fmt.Sprint(g.NodeCount())))
	printKeyValue(out, "edges", StyleNumber.Render(fmt.Sprint(g.EdgeCount())))

	props := g.Properties()
	if len(props) == 0 {
		return nil
	}
	printNewline(out)
	printTitle(out, "Properties")
	for _, p := range props {
		nodes, edges := nonDefaultCounts(p)
		printKeyValue(out, p.Name(), fmt.Sprintf("%s %s", StyleHighlight.Render(string(p.Type())),
			StyleDim.Render(fmt.Sprintf("(%d nodes, %d edges set)", nodes, edges))))
	}
	return nil
}

// nonDefaultCounts returns how many nodes and edges hold a value other than
// the property defaults.
func nonDefaultCounts(p graph.Property) (nodes, edges int) {
	switch p := p.(type) {
	case *graph.BooleanProperty:
		return len(p.NonDefaultNodes()), len(p.NonDefaultEdges())
	case *graph.ColorProperty:
		return len(p.NonDefaultNodes()), len(p.NonDefaultEdges())
	case *graph.IntegerProperty:
		return len(p.NonDefaultNodes()), len(p.NonDefaultEdges())
	case *graph.DoubleProperty:
		return len(p.NonDefaultNodes()), len(p.NonDefaultEdges())
	}
	return 0, 0
}
