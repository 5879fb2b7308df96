package requirement

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode parses a YAML or JSON requirements document into an untyped value
// suitable for Classify. An empty document decodes to nil.
func Decode(content []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(content, &v); err != nil {
		return nil, fmt.Errorf("invalid requirements document: %w", err)
	}
	return v, nil
}

// Load reads and decodes the requirements document at path.
func Load(path string) (any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read requirements: %w", err)
	}
	return Decode(content)
}
