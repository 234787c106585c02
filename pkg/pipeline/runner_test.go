package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/flatbox/pkg/cache"
	ferrors "github.com/matzehuels/flatbox/pkg/errors"
	"github.com/matzehuels/flatbox/pkg/observability"
	"github.com/matzehuels/flatbox/pkg/panel"
	"github.com/matzehuels/flatbox/pkg/storage"
)

func artifactNames(res *Result) []string {
	var names []string
	for _, a := range res.Artifacts {
		names = append(names, a.Name)
	}
	return names
}

func TestExecuteMaterialGrouping(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Enclosure: panel.NewEnclosure(100, 50, 80)})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if diff := cmp.Diff([]string{"perspex.svg", "wood.svg"}, artifactNames(res)); diff != "" {
		t.Errorf("artifacts mismatch (-want +got):\n%s", diff)
	}
	if res.Stats.PanelCount != 7 || res.Stats.GroupCount != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}

	// wood: inner base 100x80 then base 102x82 on one row
	wood := res.Groups[1]
	if b := wood.Layout.Bounds; b.Width != 222 || b.Height != 102 {
		t.Errorf("wood bounds = %dx%d, want 222x102", b.Width, b.Height)
	}

	svg, ok := res.Artifact("wood", FormatSVG)
	if !ok {
		t.Fatal("wood svg missing")
	}
	if !bytes.Contains(svg.Data, []byte(`viewBox="0 0 222 102" width="222mm" height="102mm"`)) {
		t.Errorf("wood svg header wrong:\n%s", svg.Data)
	}
	if n := bytes.Count(svg.Data, []byte("<path")); n != 2 {
		t.Errorf("wood svg has %d paths, want 2", n)
	}
}

func TestExecuteCombinedGrouping(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Enclosure: panel.NewEnclosure(10, 10, 10),
		Grouping:  "combined",
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if diff := cmp.Diff([]string{"image.svg"}, artifactNames(res)); diff != "" {
		t.Errorf("artifacts mismatch (-want +got):\n%s", diff)
	}
	if n := bytes.Count(res.Artifacts[0].Data, []byte("<path")); n != 7 {
		t.Errorf("image.svg has %d paths, want 7", n)
	}
}

func TestExecuteAllFormats(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Enclosure:     panel.NewEnclosure(40, 20, 30),
		Formats:       ValidFormats,
		Groups:        []string{"wood"},
		ThumbnailSize: 32,
		Resolution:    2,
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := []string{"wood.svg", "wood.json", "wood.pdf", "wood.png", "wood.thumb.png", "cutlist.xlsx"}
	if diff := cmp.Diff(want, artifactNames(res)); diff != "" {
		t.Errorf("artifacts mismatch (-want +got):\n%s", diff)
	}
	for _, a := range res.Artifacts {
		if len(a.Data) == 0 {
			t.Errorf("%s is empty", a.Name)
		}
	}
	if a, ok := res.Artifact("", FormatXLSX); !ok || a.Name != CutListName {
		t.Errorf("cut list lookup = %+v, %v", a, ok)
	}
}

func TestExecuteInvalidInput(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Enclosure: panel.Enclosure{Width: -1, Height: 1, Depth: 1}})
	if !ferrors.IsInvalid(err) {
		t.Errorf("Execute() error = %v, want invalid input", err)
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil, nil, nil).Execute(ctx, Options{Enclosure: panel.NewEnclosure(1, 1, 1)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestExecuteCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	opts := Options{Enclosure: panel.NewEnclosure(100, 50, 80), Formats: []string{"svg", "xlsx"}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.Stats.CacheHits != 0 || first.Stats.CacheMisses != 3 {
		t.Errorf("first run stats = %+v, want 3 misses", first.Stats)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if second.Stats.CacheHits != 3 {
		t.Errorf("second run hits = %d, want 3", second.Stats.CacheHits)
	}
	for i := range first.Artifacts {
		if !bytes.Equal(first.Artifacts[i].Data, second.Artifacts[i].Data) {
			t.Errorf("%s differs between cached and fresh run", first.Artifacts[i].Name)
		}
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute() error: %v", err)
	}
	if third.Stats.CacheHits != 0 {
		t.Errorf("refresh run hits = %d, want 0", third.Stats.CacheHits)
	}

	opts.Refresh = false
	opts.Enclosure.Depth = 81
	fourth, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("changed Execute() error: %v", err)
	}
	if fourth.Stats.CacheHits != 0 {
		t.Errorf("changed input hits = %d, want 0", fourth.Stats.CacheHits)
	}
}

func TestExecuteDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	r := NewRunner(nil, nil, logger)
	if _, err := r.Execute(context.Background(), Options{Enclosure: panel.NewEnclosure(10, 10, 10)}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"placed panel", "flushed row", "panel set", "inner base", "rendered panels"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q", want)
		}
	}
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(ctx context.Context, name string, data []byte) error {
	if w.after == 0 {
		return ferrors.Wrap(ferrors.ErrCodeStorage, errors.New("disk full"), "write %s", name)
	}
	w.after--
	return nil
}

func TestWrite(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Enclosure: panel.NewEnclosure(100, 50, 80), Formats: []string{"svg", "xlsx"}})
	if err != nil {
		t.Fatal(err)
	}

	mem := storage.NewMemoryWriter()
	names, err := r.Write(context.Background(), res, mem)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if diff := cmp.Diff([]string{"perspex.svg", "wood.svg", "cutlist.xlsx"}, names); diff != "" {
		t.Errorf("written names mismatch (-want +got):\n%s", diff)
	}
	if data, ok := mem.Get("wood.svg"); !ok || !bytes.HasPrefix(data, []byte("<svg")) {
		t.Error("wood.svg not stored")
	}
}

func TestWriteStorageErrorIsFatal(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Enclosure: panel.NewEnclosure(100, 50, 80)})
	if err != nil {
		t.Fatal(err)
	}

	names, err := r.Write(context.Background(), res, &failingWriter{after: 1})
	if !ferrors.IsStorage(err) {
		t.Fatalf("Write() error = %v, want STORAGE_ERROR", err)
	}
	if diff := cmp.Diff([]string{"perspex.svg"}, names); diff != "" {
		t.Errorf("names before failure mismatch (-want +got):\n%s", diff)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	layouts []string
	renders []string
	writes  int
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, group string, w, hgt int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts = append(h.layouts, group)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, group, format string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders = append(h.renders, group+"."+format)
}

func (h *recordingHooks) OnWrite(context.Context, string, int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.writes++
}

func TestExecuteEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Enclosure: panel.NewEnclosure(10, 10, 10)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Write(context.Background(), res, storage.NewMemoryWriter()); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"perspex", "wood"}, hooks.layouts); diff != "" {
		t.Errorf("layout hooks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"perspex.svg", "wood.svg"}, hooks.renders); diff != "" {
		t.Errorf("render hooks mismatch (-want +got):\n%s", diff)
	}
	if hooks.writes != 2 {
		t.Errorf("write hooks = %d, want 2", hooks.writes)
	}
}
