// Package pipeline provides the panel pipeline shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline runs four stages:
//
//  1. Build: derive the panels of an enclosure and split them into groups
//  2. Layout: place each group's panels on a sheet with row-flow packing
//  3. Assemble: wrap each layout into a drawing document
//  4. Render: turn each document into the requested output formats
//
// Rendered artifacts are cached by a hash of every input that influences
// them. [Runner.Write] persists a [Result] through a [storage.Writer].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Enclosure: panel.NewEnclosure(100, 50, 80),
//	    Formats:   []string{"svg", "xlsx"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	names, err := runner.Write(ctx, result, writer)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flatbox/pkg/cache"
	"github.com/matzehuels/flatbox/pkg/document"
	ferrors "github.com/matzehuels/flatbox/pkg/errors"
	"github.com/matzehuels/flatbox/pkg/layout"
	"github.com/matzehuels/flatbox/pkg/panel"
)

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatJSON  = "json"
	FormatPDF   = "pdf"
	FormatPNG   = "png"
	FormatThumb = "thumb"
	FormatXLSX  = "xlsx"
)

// CutListName is the file name of the workbook written for [FormatXLSX].
const CutListName = "cutlist.xlsx"

// DefaultThumbnailSize is the thumbnail edge length in pixels.
const DefaultThumbnailSize = 256

// DefaultResolution is the PNG resolution in dots per millimetre.
const DefaultResolution = 8.0

// ValidFormats is the set of supported output formats, in the order they
// are rendered.
var ValidFormats = []string{FormatSVG, FormatJSON, FormatPDF, FormatPNG, FormatThumb, FormatXLSX}

// fileExt maps per-group formats to the extension of their file.
var fileExt = map[string]string{
	FormatSVG:   ".svg",
	FormatJSON:  ".json",
	FormatPDF:   ".pdf",
	FormatPNG:   ".png",
	FormatThumb: ".thumb.png",
}

// ContentTypes maps formats to their MIME type.
var ContentTypes = map[string]string{
	FormatSVG:   "image/svg+xml",
	FormatJSON:  "application/json",
	FormatPDF:   "application/pdf",
	FormatPNG:   "image/png",
	FormatThumb: "image/png",
	FormatXLSX:  "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	Enclosure panel.Enclosure `json:"enclosure"`
	Grouping  string          `json:"grouping,omitempty"`
	Formats   []string        `json:"formats,omitempty"`

	// Groups restricts rendering to the named groups. Empty means all.
	Groups []string `json:"groups,omitempty"`

	ThumbnailSize int     `json:"thumbnail_size,omitempty"`
	Resolution    float64 `json:"resolution,omitempty"`

	// Refresh bypasses cache reads; results are still stored.
	Refresh bool `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
	grouping  panel.Grouping
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Enclosure.Validate(); err != nil {
		return err
	}
	g, err := panel.ParseGrouping(o.Grouping)
	if err != nil {
		return err
	}
	o.grouping = g
	o.Grouping = string(g)

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	formats, err := normalizeFormats(o.Formats)
	if err != nil {
		return err
	}
	o.Formats = formats

	for _, name := range o.Groups {
		if err := ferrors.ValidateGroupName(name); err != nil {
			return err
		}
	}
	if o.ThumbnailSize <= 0 {
		o.ThumbnailSize = DefaultThumbnailSize
	}
	if o.Resolution <= 0 {
		o.Resolution = DefaultResolution
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// GroupingPolicy returns the parsed grouping. It is only meaningful after
// [Options.ValidateAndSetDefaults].
func (o *Options) GroupingPolicy() panel.Grouping { return o.grouping }

// inputKey holds every input that influences rendered bytes.
type inputKey struct {
	Enclosure  panel.Enclosure `json:"enclosure"`
	Grouping   string          `json:"grouping"`
	Resolution float64         `json:"resolution"`
}

// InputHash identifies the geometry of a run for cache keys.
func (o *Options) InputHash() (string, error) {
	return cache.HashJSON(inputKey{Enclosure: o.Enclosure, Grouping: o.Grouping, Resolution: o.Resolution})
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(group, format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Group: group, Format: format}
	if format == FormatThumb {
		opts.Size = o.ThumbnailSize
	}
	if format == FormatXLSX {
		opts.Group = strings.Join(o.Groups, ",")
	}
	return opts
}

// =============================================================================
// Formats
// =============================================================================

// ValidateFormat checks that a format is supported. Formats are case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return ferrors.New(ferrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list such as "svg, PDF,xlsx".
// Entries are trimmed and lowercased; an empty list yields svg.
func ParseFormats(s string) ([]string, error) {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return []string{FormatSVG}, nil
	}
	return normalizeFormats(formats)
}

// normalizeFormats trims and lowercases formats, validates them and returns
// them deduplicated in [ValidFormats] order.
func normalizeFormats(formats []string) ([]string, error) {
	lower := make([]string, len(formats))
	for i, f := range formats {
		lower[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if err := ValidateFormats(lower); err != nil {
		return nil, err
	}
	var out []string
	for _, f := range ValidFormats {
		if slices.Contains(lower, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// ArtifactName returns the file name of a group's artifact in format.
func ArtifactName(group, format string) string {
	if format == FormatXLSX {
		return CutListName
	}
	return group + fileExt[format]
}

// =============================================================================
// Result
// =============================================================================

// GroupResult holds the intermediate values for one group.
type GroupResult struct {
	Group    panel.Group       `json:"group"`
	Layout   layout.Result     `json:"layout"`
	Document document.Document `json:"document"`
}

// Artifact is one rendered output.
type Artifact struct {
	Name   string `json:"name"`
	Group  string `json:"group,omitempty"`
	Format string `json:"format"`
	Data   []byte `json:"-"`
	Cached bool   `json:"cached,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Panels    []panel.Panel
	Groups    []GroupResult
	Artifacts []Artifact
	Stats     Stats
}

// Artifact returns the artifact of group in format.
func (r *Result) Artifact(group, format string) (Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Format == format && (format == FormatXLSX || a.Group == group) {
			return a, true
		}
	}
	return Artifact{}, false
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PanelCount  int
	GroupCount  int
	CacheHits   int
	CacheMisses int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}
