package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kortschak/utter"

	"github.com/matzehuels/flatbox/pkg/document"
	ferrors "github.com/matzehuels/flatbox/pkg/errors"
	"github.com/matzehuels/flatbox/pkg/layout"
	"github.com/matzehuels/flatbox/pkg/observability"
	"github.com/matzehuels/flatbox/pkg/panel"
)

// BuildGroups derives the panels of opts.Enclosure and splits them by the
// grouping policy. When opts.Groups is set only those groups are returned,
// in the policy's order; naming an unknown group is a NOT_FOUND error.
func BuildGroups(opts Options) ([]panel.Panel, []panel.Group, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	panels := panel.Build(opts.Enclosure)
	groups := panel.Split(panels, opts.GroupingPolicy())

	if len(opts.Groups) == 0 {
		return panels, groups, nil
	}
	for _, name := range opts.Groups {
		if _, ok := panel.Find(groups, name); !ok {
			return nil, nil, ferrors.New(ferrors.ErrCodeNotFound,
				"unknown group %q for grouping %s", name, opts.Grouping)
		}
	}
	var selected []panel.Group
	for _, g := range groups {
		for _, name := range opts.Groups {
			if g.Name == name {
				selected = append(selected, g)
				break
			}
		}
	}
	return panels, selected, nil
}

// LayoutGroup lays out one group and assembles its document. Every
// placement is logged at debug level. A nil logger selects log.Default().
func LayoutGroup(ctx context.Context, g panel.Group, logger *log.Logger) GroupResult {
	if logger == nil {
		logger = log.Default()
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.Name, len(g.Panels))
	start := time.Now()

	res := layout.Build(panel.Rectangles(g.Panels), layout.WithObserver(func(s layout.Step) {
		if s.Flush {
			logger.Debug("flushed row", "group", g.Name, "total_height", s.TotalHeight, "max_row_width", s.MaxRowWidth)
			return
		}
		logger.Debug("placed panel",
			"group", g.Name,
			"panel", g.Panels[s.Index].Name,
			"size", s.Rect,
			"at", s.Before,
			"wrapped", s.Wrapped)
	}))

	hooks.OnLayoutComplete(ctx, g.Name, res.Bounds.Width, res.Bounds.Height, time.Since(start))
	return GroupResult{
		Group:    g,
		Layout:   res,
		Document: document.Assemble(g.Name, res),
	}
}

// logPanels writes every panel at debug level, plus a full dump of the set.
func logPanels(logger *log.Logger, panels []panel.Panel) {
	if logger.GetLevel() > log.DebugLevel {
		return
	}
	for _, p := range panels {
		logger.Debug("panel", "name", p.Name, "material", p.Material, "width", p.Rect.Width, "height", p.Rect.Height)
	}
	logger.Debug("panel set\n" + utter.Sdump(panels))
}
