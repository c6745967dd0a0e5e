package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vkotov/rulesmith/internal/rules"
)

// SourceVersion is the rule-set source format version understood by
// sing-box 1.12+.
const SourceVersion = 4

// RuleSet is a sing-box rule-set source document.
type RuleSet struct {
	Version int    `json:"version"`
	Rules   []Rule `json:"rules"`
}

// Rule is one headless rule block. Empty categories are omitted entirely
// rather than serialized as empty lists.
type Rule struct {
	DomainSuffix []string `json:"domain_suffix,omitempty"`
	Domain       []string `json:"domain,omitempty"`
	IPCIDR       []string `json:"ip_cidr,omitempty"`
}

// DomainRuleSet splits domain entries into suffix and exact blocks.
func DomainRuleSet(entries []string) RuleSet {
	suffixes, exacts := rules.Split(entries)

	rs := RuleSet{Version: SourceVersion, Rules: []Rule{}}
	if len(suffixes) > 0 {
		rs.Rules = append(rs.Rules, Rule{DomainSuffix: suffixes})
	}
	if len(exacts) > 0 {
		rs.Rules = append(rs.Rules, Rule{Domain: exacts})
	}
	return rs
}

// IPCIDRRuleSet wraps CIDR entries in a single ip_cidr block.
func IPCIDRRuleSet(entries []string) RuleSet {
	cleaned := make([]string, 0, len(entries))
	for _, e := range entries {
		if c := rules.Clean(e); c != "" {
			cleaned = append(cleaned, c)
		}
	}

	rs := RuleSet{Version: SourceVersion, Rules: []Rule{}}
	if cidrs := rules.SortedUnique(cleaned); len(cidrs) > 0 {
		rs.Rules = append(rs.Rules, Rule{IPCIDR: cidrs})
	}
	return rs
}

// WriteRuleSet writes the rule-set source document to path with two-space
// indentation.
func WriteRuleSet(path string, rs RuleSet) error {
	data, err := json.MarshalIndent(&rs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render rule-set JSON: %v", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}
	return nil
}
