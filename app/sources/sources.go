package sources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source is one configured feed. Order in the file is significant: it fixes
// the tie-break order of items with equal publication times.
type Source struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"` // optional channel display name override
}

type fileFormat struct {
	Sources []Source `yaml:"sources"`
}

// Load reads the source list from a YAML file, preserving document order.
func Load(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var parsed fileFormat
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	if len(parsed.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s lists no sources", path)
	}

	for i, source := range parsed.Sources {
		if source.URL == "" {
			return nil, fmt.Errorf("source at index %d has no URL", i)
		}
	}

	return parsed.Sources, nil
}
