package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestClashProviderYAML_SortedAndDeduplicated(t *testing.T) {
	data, err := ClashProviderYAML([]string{"b.com", "a.com", "b.com"})
	if err != nil {
		t.Fatalf("ClashProviderYAML failed: %v", err)
	}

	var doc struct {
		Payload []string `yaml:"payload"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}

	want := []string{"a.com", "b.com"}
	if !reflect.DeepEqual(doc.Payload, want) {
		t.Errorf("payload = %v, want %v", doc.Payload, want)
	}
}

func TestDomainRuleSet(t *testing.T) {
	rs := DomainRuleSet([]string{"+.example.com", "+.example.com", "foo.com"})

	if rs.Version != SourceVersion {
		t.Errorf("version = %d, want %d", rs.Version, SourceVersion)
	}
	if len(rs.Rules) != 2 {
		t.Fatalf("rules = %d blocks, want 2", len(rs.Rules))
	}
	if want := []string{"example.com"}; !reflect.DeepEqual(rs.Rules[0].DomainSuffix, want) {
		t.Errorf("domain_suffix = %v, want %v", rs.Rules[0].DomainSuffix, want)
	}
	if want := []string{"foo.com"}; !reflect.DeepEqual(rs.Rules[1].Domain, want) {
		t.Errorf("domain = %v, want %v", rs.Rules[1].Domain, want)
	}
}

func TestDomainRuleSet_EmptyCategoryBlocksOmitted(t *testing.T) {
	rs := DomainRuleSet([]string{"foo.com"})
	if len(rs.Rules) != 1 {
		t.Fatalf("rules = %d blocks, want 1", len(rs.Rules))
	}
	if rs.Rules[0].DomainSuffix != nil {
		t.Errorf("expected no domain_suffix block, got %v", rs.Rules[0].DomainSuffix)
	}

	data, err := json.Marshal(&rs)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "domain_suffix") {
		t.Errorf("empty category serialized: %s", data)
	}
}

func TestDomainRuleSet_NoEntries(t *testing.T) {
	rs := DomainRuleSet(nil)
	if len(rs.Rules) != 0 {
		t.Errorf("rules = %v, want none", rs.Rules)
	}

	data, err := json.Marshal(&rs)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"version":4,"rules":[]}`; got != want {
		t.Errorf("serialized = %s, want %s", got, want)
	}
}

func TestIPCIDRRuleSet(t *testing.T) {
	rs := IPCIDRRuleSet([]string{"'10.0.0.0/8'", "1.0.0.0/24", "10.0.0.0/8"})

	if len(rs.Rules) != 1 {
		t.Fatalf("rules = %d blocks, want 1", len(rs.Rules))
	}
	want := []string{"1.0.0.0/24", "10.0.0.0/8"}
	if !reflect.DeepEqual(rs.Rules[0].IPCIDR, want) {
		t.Errorf("ip_cidr = %v, want %v", rs.Rules[0].IPCIDR, want)
	}
}

func TestWriteRuleSet(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "direct.json")

	if err := WriteRuleSet(path, DomainRuleSet([]string{"+.cn"})); err != nil {
		t.Fatalf("WriteRuleSet failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var rs RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if rs.Version != SourceVersion || len(rs.Rules) != 1 {
		t.Errorf("unexpected document: %+v", rs)
	}
}

func TestWriteClashProvider(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "private.yaml")

	if err := WriteClashProvider(path, []string{"+.lan"}); err != nil {
		t.Fatalf("WriteClashProvider failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "+.lan") {
		t.Errorf("unexpected document: %s", data)
	}
}
