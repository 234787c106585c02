package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flatbox/pkg/panel"
	"github.com/matzehuels/flatbox/pkg/pipeline"
)

// panelsCommand creates the panels command, which prints the derived panels
// without writing anything.
func (c *CLI) panelsCommand() *cobra.Command {
	var flags enclosureFlags

	cmd := &cobra.Command{
		Use:     "panels",
		Short:   "Print the panels of an enclosure",
		Example: `  flatbox panels -w 100 --height 50 -d 80 --wood-thickness 6`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd.Flags().Changed)
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Enclosure: cfg.Enclosure,
				Grouping:  cfg.Output.Grouping,
				Logger:    loggerFromContext(cmd.Context()),
			}
			return c.runPanels(cmd.Context(), opts)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runPanels(ctx context.Context, opts pipeline.Options) error {
	_, groups, err := pipeline.BuildGroups(opts)
	if err != nil {
		return err
	}

	e := opts.Enclosure
	printKeyValue("Enclosure", fmt.Sprintf("%d × %d × %d mm", e.Width, e.Height, e.Depth))
	printKeyValue("Perspex", fmt.Sprintf("%d mm", e.PerspexThickness))
	printKeyValue("Wood", fmt.Sprintf("%d mm", e.WoodThickness))
	printKeyValue("Grouping", opts.Grouping)

	for _, g := range groups {
		gr := pipeline.LayoutGroup(ctx, g, opts.Logger)
		printNewline()
		fmt.Println(StyleTitle.Render(g.Name))
		fmt.Println(renderPanelTable(g.Panels))
		b := gr.Layout.Bounds
		printDetail("sheet %d × %d mm · panel area %d mm²", b.Width, b.Height, panel.TotalArea(g.Panels))
	}

	printNewline()
	printNextStep("Write the drawings", fmt.Sprintf("%s render -w %d --height %d -d %d --perspex-thickness %d --wood-thickness %d",
		appName, e.Width, e.Height, e.Depth, e.PerspexThickness, e.WoodThickness))
	return nil
}
