// Package storage persists rendered artifacts.
//
// A [Writer] receives each artifact as a file name and its bytes. Every
// failure is reported as a STORAGE_ERROR ([ferrors.ErrCodeStorage]); the
// caller treats it as fatal for the run and no write is retried.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/maruel/natural"

	ferrors "github.com/matzehuels/flatbox/pkg/errors"
)

// Writer persists named artifacts.
type Writer interface {
	Write(ctx context.Context, name string, data []byte) error
}

// DirWriter writes artifacts as files below a directory, creating the
// directory on first use.
type DirWriter struct {
	dir string
}

// NewDirWriter validates dir and returns a writer rooted at it. The
// directory itself is created lazily.
func NewDirWriter(dir string) (*DirWriter, error) {
	if err := ferrors.ValidateOutputDir(dir); err != nil {
		return nil, err
	}
	return &DirWriter{dir: dir}, nil
}

// Dir returns the output directory.
func (w *DirWriter) Dir() string { return w.dir }

// Path returns the file path name is written to.
func (w *DirWriter) Path(name string) string { return filepath.Join(w.dir, name) }

// Write stores data as dir/name, replacing any existing file.
func (w *DirWriter) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ferrors.ValidateFileName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeStorage, err, "create output directory %s", w.dir)
	}
	path := w.Path(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeStorage, err, "write %s", path)
	}
	return nil
}

// MemoryWriter keeps artifacts in memory. It is safe for concurrent use.
type MemoryWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemoryWriter returns an empty MemoryWriter.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{files: make(map[string][]byte)}
}

// Write stores a copy of data under name.
func (w *MemoryWriter) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ferrors.ValidateFileName(name); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[name] = slices.Clone(data)
	return nil
}

// Get returns the data stored under name.
func (w *MemoryWriter) Get(name string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[name]
	return data, ok
}

// Names lists the stored names in natural order ("panel2" before "panel10").
func (w *MemoryWriter) Names() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, 0, len(w.files))
	for n := range w.files {
		names = append(names, n)
	}
	slices.SortFunc(names, compareNatural)
	return names
}

// SortNatural orders file names so embedded numbers compare numerically.
func SortNatural(names []string) {
	slices.SortFunc(names, compareNatural)
}

func compareNatural(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}
	return 0
}

var (
	_ Writer = (*DirWriter)(nil)
	_ Writer = (*MemoryWriter)(nil)
)
