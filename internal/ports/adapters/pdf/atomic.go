package pdf

import (
	"fmt"
	"os"
	"path/filepath"
)

// atomicFile writes to a temp file next to the target and renames it on commit,
// so the target is never left half written.
type atomicFile struct {
	path    string
	tmpPath string
	file    *os.File
}

func createAtomic(path string) (*atomicFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".ytsum-*.pdf.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	return &atomicFile{path: path, tmpPath: tmp.Name(), file: tmp}, nil
}

func (w *atomicFile) Write(p []byte) (int, error) {
	return w.file.Write(p)
}

func (w *atomicFile) commit() error {
	if err := w.file.Chmod(0o644); err != nil {
		w.abort()
		return fmt.Errorf("chmod: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		w.abort()
		return fmt.Errorf("sync: %w", err)
	}
	if err := w.file.Close(); err != nil {
		_ = os.Remove(w.tmpPath)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(w.tmpPath, w.path); err != nil {
		_ = os.Remove(w.tmpPath)
		return fmt.Errorf("rename to %s: %w", w.path, err)
	}
	return nil
}

func (w *atomicFile) abort() {
	_ = w.file.Close()
	_ = os.Remove(w.tmpPath)
}
