// Package payload reads Clash rule-provider documents: a YAML mapping whose
// "payload" key holds the list of rule entries.
package payload

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse extracts the payload entries from a rule-provider document.
// A document without a payload list is rejected as a whole; there is no
// partial parse. Scalar entries of any type are accepted (upstream lists
// occasionally carry unquoted numeric entries), non-scalar items and
// entries blank after trimming are dropped silently.
func Parse(data []byte, name string) ([]string, error) {
	var doc struct {
		Payload yaml.Node `yaml:"payload"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid rule-provider document \"%s\": %v", name, err)
	}

	if doc.Payload.Kind == 0 || doc.Payload.Tag == "!!null" {
		return nil, fmt.Errorf("invalid rule-provider document \"%s\": missing payload list", name)
	}
	if doc.Payload.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("invalid rule-provider document \"%s\": payload is not a list", name)
	}

	entries := make([]string, 0, len(doc.Payload.Content))
	for _, item := range doc.Payload.Content {
		if item.Kind != yaml.ScalarNode {
			continue
		}
		entry := strings.TrimSpace(item.Value)
		if entry == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ParseFile reads and parses a rule-provider document from disk.
func ParseFile(path string, name string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read list \"%s\": %v", name, err)
	}
	return Parse(data, name)
}
