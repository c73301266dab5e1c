package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// Export writes the full report, uncapped findings included, as indented
// JSON for downstream tooling such as CI gates.
func Export(r *Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}
