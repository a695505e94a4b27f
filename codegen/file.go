package codegen

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFiles writes every generated file under dir. On the first
// write failure it removes whatever it has already written (unless
// keep is set) and returns the path and underlying cause, per
// spec.md §7: "I/O failure writing output files — surfaced to the
// caller with the path and underlying cause; partial files are
// removed."
func WriteFiles(dir string, files map[string][]byte, keep bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("codegen: creating output directory %s: %w", dir, err)
	}

	written := make([]string, 0, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			if !keep {
				removeAll(written)
			}
			return fmt.Errorf("codegen: writing %s: %w", path, err)
		}
		written = append(written, path)
	}
	return nil
}

func removeAll(paths []string) {
	for _, p := range paths {
		os.Remove(p)
	}
}
