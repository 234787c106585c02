package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/flatbox/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root attaches the CLI logger to the command context before any
// subcommand runs, so helpers deeper in the call chain can reach it through
// loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Flatbox lays out the flat panels of a box enclosure for cutting",
		Long: `Flatbox derives the panels of a perspex and wood box enclosure from its
inner dimensions, packs them onto sheets and writes cutting drawings as SVG,
JSON, PDF, PNG or an Excel cut list.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.panelsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
