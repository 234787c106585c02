package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	ferrors "github.com/matzehuels/flatbox/pkg/errors"
)

func TestDirWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := NewDirWriter(dir)
	if err != nil {
		t.Fatalf("NewDirWriter() error: %v", err)
	}

	if err := w.Write(context.Background(), "wood.svg", []byte("<svg/>")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "wood.svg"))
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(got) != "<svg/>" {
		t.Errorf("file content = %q, want <svg/>", got)
	}

	if err := w.Write(context.Background(), "wood.svg", []byte("<svg></svg>")); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	got, _ = os.ReadFile(w.Path("wood.svg"))
	if string(got) != "<svg></svg>" {
		t.Errorf("overwritten content = %q", got)
	}
}

func TestDirWriterStorageError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	// a regular file where the output directory should be
	w, err := NewDirWriter(filepath.Join(blocker, "out"))
	if err != nil {
		t.Fatalf("NewDirWriter() error: %v", err)
	}

	err = w.Write(context.Background(), "image.svg", []byte("x"))
	if !ferrors.IsStorage(err) {
		t.Errorf("Write() error = %v, want STORAGE_ERROR", err)
	}
}

func TestDirWriterRejectsBadNames(t *testing.T) {
	w, err := NewDirWriter(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"", "../escape.svg", "a/b.svg", ".hidden"} {
		err := w.Write(context.Background(), name, nil)
		if !ferrors.Is(err, ferrors.ErrCodeInvalidPath) {
			t.Errorf("Write(%q) error = %v, want INVALID_PATH", name, err)
		}
	}
}

func TestNewDirWriterValidates(t *testing.T) {
	if _, err := NewDirWriter(""); !ferrors.Is(err, ferrors.ErrCodeInvalidPath) {
		t.Errorf("NewDirWriter(\"\") error = %v, want INVALID_PATH", err)
	}
}

func TestWriteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w, _ := NewDirWriter(t.TempDir())
	if err := w.Write(ctx, "a.svg", nil); err != context.Canceled {
		t.Errorf("DirWriter.Write() error = %v, want context.Canceled", err)
	}
	if err := NewMemoryWriter().Write(ctx, "a.svg", nil); err != context.Canceled {
		t.Errorf("MemoryWriter.Write() error = %v, want context.Canceled", err)
	}
}

func TestMemoryWriter(t *testing.T) {
	w := NewMemoryWriter()
	ctx := context.Background()

	data := []byte("abc")
	for _, name := range []string{"sheet10.svg", "sheet2.svg", "cutlist.xlsx"} {
		if err := w.Write(ctx, name, data); err != nil {
			t.Fatalf("Write(%s) error: %v", name, err)
		}
	}
	data[0] = 'x'

	got, ok := w.Get("sheet2.svg")
	if !ok || string(got) != "abc" {
		t.Errorf("Get() = %q, %v; want stored copy", got, ok)
	}

	want := []string{"cutlist.xlsx", "sheet2.svg", "sheet10.svg"}
	if diff := cmp.Diff(want, w.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestSortNatural(t *testing.T) {
	names := []string{"b10", "b2", "a", "b1"}
	SortNatural(names)
	if diff := cmp.Diff([]string{"a", "b1", "b2", "b10"}, names); diff != "" {
		t.Errorf("SortNatural() mismatch (-want +got):\n%s", diff)
	}
}
