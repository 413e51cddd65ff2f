// internal/analysis/export.go
package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// writeAnalysis serializes analysis to path. The extension picks the format:
// .yaml and .yml write YAML, anything else writes indented JSON.
func writeAnalysis(path string, analysis any) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", path, err)
		}
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(analysis)
		if err != nil {
			return fmt.Errorf("unable to marshal analysis YAML: %w", err)
		}
	default:
		data, err = json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("unable to marshal analysis JSON: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write analysis %s: %w", path, err)
	}
	return nil
}
