package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flatbox/pkg/cache"
	"github.com/matzehuels/flatbox/pkg/observability"
	"github.com/matzehuels/flatbox/pkg/storage"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options; every
// layout call owns its own state.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer selects [cache.DefaultKeyer]; a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs build → layout → assemble → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	panels, groups, err := BuildGroups(opts)
	if err != nil {
		return nil, err
	}
	logPanels(opts.Logger, panels)

	result := &Result{Panels: panels}
	result.Stats.PanelCount = len(panels)
	result.Stats.GroupCount = len(groups)

	layoutStart := time.Now()
	for _, g := range groups {
		gr := LayoutGroup(ctx, g, opts.Logger)
		opts.Logger.Debug("laid out group",
			"group", g.Name,
			"panels", len(g.Panels),
			"width", gr.Layout.Bounds.Width,
			"height", gr.Layout.Bounds.Height)
		result.Groups = append(result.Groups, gr)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)

	inputHash, err := opts.InputHash()
	if err != nil {
		return nil, fmt.Errorf("hash input: %w", err)
	}

	renderStart := time.Now()
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if format == FormatXLSX {
			a, err := r.renderCached(ctx, inputHash, "", format, opts, func() ([]byte, error) {
				return RenderCutList(result.Groups)
			})
			if err != nil {
				return nil, err
			}
			result.add(a)
			continue
		}
		for _, gr := range result.Groups {
			doc := gr.Document
			a, err := r.renderCached(ctx, inputHash, gr.Group.Name, format, opts, func() ([]byte, error) {
				return Render(doc, format, opts)
			})
			if err != nil {
				return nil, err
			}
			result.add(a)
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered panels",
		"panels", result.Stats.PanelCount,
		"groups", result.Stats.GroupCount,
		"artifacts", len(result.Artifacts),
		"cached", result.Stats.CacheHits,
		"duration", result.Stats.LayoutTime+result.Stats.RenderTime)

	return result, nil
}

func (res *Result) add(a Artifact) {
	if a.Cached {
		res.Stats.CacheHits++
	} else {
		res.Stats.CacheMisses++
	}
	res.Artifacts = append(res.Artifacts, a)
}

// renderCached looks the artifact up in the cache and renders it with fn
// on a miss. Cache read and write failures only cost a re-render.
func (r *Runner) renderCached(ctx context.Context, inputHash, group, format string, opts Options, fn func() ([]byte, error)) (Artifact, error) {
	a := Artifact{Name: ArtifactName(group, format), Group: group, Format: format}
	key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(group, format))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			a.Data, a.Cached = data, true
			return a, nil
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "key", key, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, group, format)
	start := time.Now()
	data, err := fn()
	hooks.OnRenderComplete(ctx, group, format, len(data), time.Since(start), err)
	if err != nil {
		return a, fmt.Errorf("render %s %s: %w", a.Name, format, err)
	}
	a.Data = data

	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
		opts.Logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return a, nil
}

// Write persists every artifact of result through w and returns the names
// written. The first failure aborts the write; it is returned unchanged so
// a STORAGE_ERROR keeps its code.
func (r *Runner) Write(ctx context.Context, result *Result, w storage.Writer) ([]string, error) {
	names := make([]string, 0, len(result.Artifacts))
	for _, a := range result.Artifacts {
		err := w.Write(ctx, a.Name, a.Data)
		observability.Pipeline().OnWrite(ctx, a.Name, len(a.Data), err)
		if err != nil {
			return names, err
		}
		r.Logger.Debug("wrote artifact", "name", a.Name, "bytes", len(a.Data))
		names = append(names, a.Name)
	}
	return names, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
