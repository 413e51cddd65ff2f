// internal/cli/output_dir.go
package gpuzip

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// prepareOutputDir clears and recreates the chart directory. It refuses to
// clear the filesystem root, the working directory or any of its ancestors,
// and any directory holding one of inputs.
func prepareOutputDir(dir string, inputs ...string) error {
	if dir == "" {
		return fmt.Errorf("output directory is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("unable to resolve output directory %q: %w", dir, err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("unable to determine working directory: %w", err)
	}
	if abs == filepath.Dir(abs) || within(abs, cwd) {
		return fmt.Errorf("refusing to clear output directory %q: it contains the working directory", dir)
	}
	for _, input := range inputs {
		if input == "" {
			continue
		}
		in, err := filepath.Abs(input)
		if err != nil {
			return fmt.Errorf("unable to resolve input %q: %w", input, err)
		}
		if within(abs, in) {
			return fmt.Errorf("refusing to clear output directory %q: it contains input %q", dir, input)
		}
	}
	if err := os.RemoveAll(abs); err != nil {
		return fmt.Errorf("unable to clear output directory %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("unable to create output directory %q: %w", dir, err)
	}
	return nil
}

// within reports whether path is parent itself or lies below it. Both must
// be absolute.
func within(parent, path string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
