package spec

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ParseSpecFile reads a YAML file at path and unmarshals it into out.
// File: ../spec/canonical.yaml
func ParseSpecFile(path string, out *CanonicalTests) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read spec file %s: %w", path, err)
	}
	return ParseSpecData(data, out)
}

func ParseSpecData(data []byte, out *CanonicalTests) error {
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal spec: %w", err)
	}
	return nil
}
