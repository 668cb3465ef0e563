package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelgraph/pkg/plugin"
)

// pluginsCommand creates the plugins command that lists registered plugins.
func (c *CLI) pluginsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List plugins and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPlugins(cmd.OutOrStdout(), plugin.Default)
		},
	}
}

func listPlugins(out io.Writer, r *plugin.Registry) error {
	for i, name := range r.Names() {
		p, err := r.Lookup(name)
		if err != nil {
			return err
		}
		if i > 0 {
			printNewline(out)
		}
		info := p.Info()
		printTitle(out, info.Name)
		printDetail(out, "%s · v%s · %s", info.Group, info.Version, info.Author)
		for _, param := range p.Parameters() {
			value := StyleDim.Render(param.Kind.String())
			if param.Default != "" {
				value += " " + StyleValue.Render(fmt.Sprintf("%q", param.Default))
			}
			printKeyValue(out, param.Name, value)
		}
	}
	return nil
}
