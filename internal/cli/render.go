package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flatbox/pkg/pipeline"
	"github.com/matzehuels/flatbox/pkg/storage"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	enclosureFlags
	output      string  // output directory
	formats     string  // comma-separated output formats
	thumbSize   int     // thumbnail edge length in pixels
	resolution  float64 // PNG resolution in pixels per millimetre
	noCache     bool    // bypass the render cache entirely
	refresh     bool    // re-render even when cached
	interactive bool    // choose groups in a picker before writing
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Lay out the panels of an enclosure and write cutting drawings",
		Long: `Render derives the panels of an enclosure, packs each group onto a sheet
and writes one drawing per group and format into the output directory.

Dimensions come from flags or from a TOML file given with --config. Flags
set explicitly on the command line override the file.`,
		Example: `  flatbox render -w 100 --height 50 -d 80
  flatbox render -c box.toml -f svg,pdf,xlsx -o cuts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, dir, err := opts.resolve(cmd.Flags().Changed, c)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), popts, dir, &opts)
		},
	}

	opts.enclosureFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutputDir, "output directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, pdf, png, thumb, xlsx (comma-separated)")
	cmd.Flags().IntVar(&opts.thumbSize, "thumb-size", pipeline.DefaultThumbnailSize, "thumbnail edge length in pixels")
	cmd.Flags().Float64Var(&opts.resolution, "resolution", pipeline.DefaultResolution, "PNG resolution in pixels per mm")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render cached drawings")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the groups to write interactively")

	return cmd
}

// resolve merges the config file and flags into validated pipeline options
// and returns them with the output directory.
func (o *renderOpts) resolve(changed func(string) bool, c *CLI) (pipeline.Options, string, error) {
	cfg, err := o.enclosureFlags.resolve(changed)
	if err != nil {
		return pipeline.Options{}, "", err
	}
	if o.wins(changed, "output") {
		cfg.Output.Dir = o.output
	}
	if o.wins(changed, "format") {
		if cfg.Output.Formats, err = pipeline.ParseFormats(o.formats); err != nil {
			return pipeline.Options{}, "", err
		}
	}

	popts := pipeline.Options{
		Enclosure:     cfg.Enclosure,
		Grouping:      cfg.Output.Grouping,
		Formats:       cfg.Output.Formats,
		ThumbnailSize: o.thumbSize,
		Resolution:    o.resolution,
		Refresh:       o.refresh,
		Logger:        c.Logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, "", err
	}
	return popts, cfg.Output.Dir, nil
}

// runRender executes the pipeline and writes every artifact into dir. A
// storage failure aborts the run.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, dir string, ro *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	writer, err := storage.NewDirWriter(dir)
	if err != nil {
		return err
	}

	if ro.interactive {
		groups, err := pickGroups(ctx, opts)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			printDetail("No groups selected")
			return nil
		}
		opts.Groups = groups
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Laying out panels...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
		} else {
			spinner.StopWithError("Rendering failed")
		}
		return err
	}

	spinner.SetMessage(fmt.Sprintf("Writing %d drawings...", len(result.Artifacts)))
	names, err := runner.Write(ctx, result, writer)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Writing to %s failed", writer.Dir()))
		return err
	}
	spinner.Stop()
	storage.SortNatural(names)

	printSuccess("Wrote %s files to %s", StyleNumber.Render(strconv.Itoa(len(names))), StyleHighlight.Render(writer.Dir()))
	for _, name := range names {
		printFile(writer.Path(name))
	}
	printStats(result.Stats.PanelCount, result.Stats.GroupCount, result.Stats.CacheHits, result.Stats.CacheMisses)

	prog.done(fmt.Sprintf("Rendered %d groups", result.Stats.GroupCount))
	return nil
}
