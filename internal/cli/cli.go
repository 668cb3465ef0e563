package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelgraph/pkg/buildinfo"
	"github.com/matzehuels/pixelgraph/pkg/observability"
	"github.com/matzehuels/pixelgraph/pkg/plugin"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pixelgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Exporter performs the library calls of the export commands.
	Exporter Exporter

	errOut     io.Writer
	config     Config
	configPath string
	verbose    bool
}

// New creates a new CLI instance logging to w. Plugins run from the
// default plugin registry.
func New(w io.Writer, level log.Level) *CLI {
	logger := newLogger(w, level)
	return &CLI{
		Logger:   logger,
		Exporter: NewExporter(plugin.Default, plugin.WithLogger(logger)),
		errOut:   w,
		config:   DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the pixelgraph root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "Pixelgraph turns images into grid graphs and back",
		Long:              `Pixelgraph builds grid graphs from images, edits selections with mask images and exports graph properties as images or node-link drawings.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.addGlobalFlags(root)

	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand("export"))
	root.AddCommand(c.loadMaskCommand())
	root.AddCommand(c.nodeLinkCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.pluginsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ExportSelectionCommand creates the standalone export-selection command.
func (c *CLI) ExportSelectionCommand() *cobra.Command {
	cmd := c.exportCommand("export-selection")
	cmd.Version = buildinfo.Version
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.PersistentPreRunE = c.setup
	cmd.SetVersionTemplate(buildinfo.Template())
	c.addGlobalFlags(cmd)
	return cmd
}

func (c *CLI) addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pixelgraph/config.toml)")
}

// setup loads the config file, adjusts the log level and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg

	level := LogInfo
	if c.verbose || (cfg.Verbose && !cmd.Flags().Changed("verbose")) {
		level = LogDebug
	}
	c.SetLogLevel(level)

	hooks := logHooks{logger: c.Logger}
	observability.SetPluginHooks(hooks)
	observability.SetGraphHooks(hooks)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}
