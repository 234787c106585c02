package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	ferrors "github.com/matzehuels/flatbox/pkg/errors"
	"github.com/matzehuels/flatbox/pkg/panel"
	"github.com/matzehuels/flatbox/pkg/pipeline"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(io.Discard, LogInfo)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRenderOptsResolve(t *testing.T) {
	c := newTestCLI(t)

	t.Run("flags", func(t *testing.T) {
		o := renderOpts{
			enclosureFlags: enclosureFlags{width: 100, height: 50, depth: 80, perspex: 1, wood: 1},
			output:         "cuts",
			formats:        "PNG, svg",
			thumbSize:      64,
			resolution:     4,
		}
		opts, dir, err := o.resolve(changedSet(), c)
		if err != nil {
			t.Fatalf("resolve() error: %v", err)
		}
		if dir != "cuts" {
			t.Errorf("dir = %q, want cuts", dir)
		}
		if diff := cmp.Diff([]string{"svg", "png"}, opts.Formats); diff != "" {
			t.Errorf("formats mismatch (-want +got):\n%s", diff)
		}
		if opts.Grouping != "material" || opts.ThumbnailSize != 64 || opts.Resolution != 4 {
			t.Errorf("opts = %+v", opts)
		}
	})

	t.Run("config keeps its formats and dir", func(t *testing.T) {
		o := renderOpts{
			enclosureFlags: enclosureFlags{configPath: writeConfig(t, sampleConfig)},
			output:         defaultOutputDir,
		}
		opts, dir, err := o.resolve(changedSet(), c)
		if err != nil {
			t.Fatalf("resolve() error: %v", err)
		}
		if dir != "cuts" {
			t.Errorf("dir = %q, want cuts", dir)
		}
		if diff := cmp.Diff([]string{"svg", "xlsx"}, opts.Formats); diff != "" {
			t.Errorf("formats mismatch (-want +got):\n%s", diff)
		}
		if opts.Grouping != "combined" {
			t.Errorf("grouping = %q, want combined", opts.Grouping)
		}
	})

	t.Run("config formats are case-insensitive", func(t *testing.T) {
		cfg := strings.Replace(sampleConfig, `formats = ["svg", "xlsx"]`, `formats = ["XLSX", " Svg"]`, 1)
		o := renderOpts{enclosureFlags: enclosureFlags{configPath: writeConfig(t, cfg)}}
		opts, _, err := o.resolve(changedSet(), c)
		if err != nil {
			t.Fatalf("resolve() error: %v", err)
		}
		if diff := cmp.Diff([]string{"svg", "xlsx"}, opts.Formats); diff != "" {
			t.Errorf("formats mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name string
			o    renderOpts
			code ferrors.Code
		}{
			{"missing width", renderOpts{enclosureFlags: enclosureFlags{height: 1, depth: 1}}, ferrors.ErrCodeInvalidInput},
			{"negative wood", renderOpts{enclosureFlags: enclosureFlags{width: 1, height: 1, depth: 1, wood: -1}}, ferrors.ErrCodeInvalidInput},
			{"bad format", renderOpts{enclosureFlags: enclosureFlags{width: 1, height: 1, depth: 1}, formats: "gif"}, ferrors.ErrCodeInvalidFormat},
			{"bad grouping", renderOpts{enclosureFlags: enclosureFlags{width: 1, height: 1, depth: 1, grouping: "rows"}}, ferrors.ErrCodeInvalidGrouping},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, _, err := tt.o.resolve(changedSet(), c)
				if !ferrors.Is(err, tt.code) {
					t.Errorf("resolve() error = %v, want %s", err, tt.code)
				}
			})
		}
	})
}

func TestRenderCommand(t *testing.T) {
	c := newTestCLI(t)
	dir := filepath.Join(t.TempDir(), "out")

	root := c.RootCommand()
	root.SetArgs([]string{"render", "-w", "100", "--height", "50", "-d", "80", "-o", dir, "-f", "svg,xlsx"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render error: %v", err)
	}

	want := []string{"cutlist.xlsx", "perspex.svg", "wood.svg"}
	if diff := cmp.Diff(want, listDir(t, dir)); diff != "" {
		t.Errorf("written files mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCombined(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()

	opts := pipeline.Options{Enclosure: enclosure100(), Grouping: "combined", Logger: c.Logger}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if err := c.runRender(context.Background(), opts, dir, &renderOpts{noCache: true}); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}
	if diff := cmp.Diff([]string{"image.svg"}, listDir(t, dir)); diff != "" {
		t.Errorf("written files mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderStorageErrorIsFatal(t *testing.T) {
	c := newTestCLI(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{Enclosure: enclosure100(), Logger: c.Logger}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	err := c.runRender(context.Background(), opts, filepath.Join(blocker, "out"), &renderOpts{noCache: true})
	if !ferrors.IsStorage(err) {
		t.Errorf("runRender() error = %v, want STORAGE_ERROR", err)
	}
}

func TestRenderCanceled(t *testing.T) {
	c := newTestCLI(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := pipeline.Options{Enclosure: enclosure100(), Logger: c.Logger}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	err := c.runRender(ctx, opts, t.TempDir(), &renderOpts{noCache: true})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("runRender() error = %v, want context.Canceled", err)
	}
}

func TestPanelsCommand(t *testing.T) {
	c := newTestCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"panels", "-w", "100", "--height", "50", "-d", "80", "-g", "combined"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("panels error: %v", err)
	}

	root = c.RootCommand()
	root.SetArgs([]string{"panels", "--height", "50", "-d", "80"})
	if err := root.ExecuteContext(context.Background()); !ferrors.IsInvalid(err) {
		t.Errorf("panels without width error = %v, want invalid input", err)
	}
}

func enclosure100() panel.Enclosure { return panel.NewEnclosure(100, 50, 80) }
