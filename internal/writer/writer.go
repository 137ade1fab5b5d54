// Package writer persists the output mapping of a run under a destination directory.
package writer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// ErrUnsafeDestination is returned when cleaning would remove a filesystem root
var ErrUnsafeDestination = errors.New("refusing to clean filesystem root")

// Writer writes output files under a destination directory
type Writer struct {
	logger *zap.Logger
}

// New creates a writer
func New(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger}
}

// Prepare makes dir ready for output. When clean is set any existing content
// is removed first.
func (w *Writer) Prepare(dir string, clean bool) error {
	if dir == "" {
		return fmt.Errorf("prepare destination: empty path")
	}

	if clean {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("prepare destination: %w", err)
		}
		if filepath.Dir(abs) == abs {
			return fmt.Errorf("prepare destination %s: %w", dir, ErrUnsafeDestination)
		}

		if _, err := os.Stat(dir); err == nil {
			w.logger.Info("Cleaning existing destination", zap.String("dir", dir))
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("clean destination: %w", err)
			}
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	w.logger.Debug("Destination ready", zap.String("dir", dir))
	return nil
}

// Write stores every entry of files under dir in sorted path order, creating
// parent directories as needed. A failing entry is logged and skipped.
// Write returns the paths written, relative to dir.
func (w *Writer) Write(files map[string][]byte, dir string) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	written := make([]string, 0, len(paths))
	for _, rel := range paths {
		if err := writeFile(filepath.Join(dir, filepath.FromSlash(rel)), files[rel]); err != nil {
			w.logger.Error("Error writing file", zap.String("file", rel), zap.Error(err))
			continue
		}
		w.logger.Debug("File created", zap.String("file", rel))
		written = append(written, rel)
	}
	return written
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
