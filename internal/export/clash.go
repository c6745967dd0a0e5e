// Package export serializes rule lists into the downstream formats:
// Clash/Mihomo rule-provider YAML and sing-box rule-set source JSON.
package export

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vkotov/rulesmith/internal/rules"
)

// provider is the Clash rule-provider document shape.
type provider struct {
	Payload []string `yaml:"payload"`
}

// ClashProviderYAML renders entries as a rule-provider document with a
// sorted, deduplicated payload list.
func ClashProviderYAML(entries []string) ([]byte, error) {
	doc := provider{Payload: rules.SortedUnique(entries)}
	if doc.Payload == nil {
		doc.Payload = []string{}
	}
	return yaml.Marshal(&doc)
}

// WriteClashProvider writes the rule-provider document to path.
func WriteClashProvider(path string, entries []string) error {
	data, err := ClashProviderYAML(entries)
	if err != nil {
		return fmt.Errorf("failed to render rule-provider YAML: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}
	return nil
}
