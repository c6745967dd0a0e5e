package config

import (
	"path/filepath"
)

// CategoryKind selects how a category's entries are interpreted and exported.
type CategoryKind string

const (
	KindDomain CategoryKind = "domain"
	KindIPCIDR CategoryKind = "ipcidr"
)

type Config struct {
	// ConfigVersion is the configuration file version.
	ConfigVersion uint8 `toml:"config_version" json:"config_version"`
	// General holds fetch settings.
	General *GeneralConfig `toml:"general" json:"general"`
	// Output holds artifact directories.
	Output *OutputConfig `toml:"output" json:"output"`
	// Compiler holds sing-box rule-set compiler settings.
	Compiler *CompilerConfig `toml:"compiler" json:"compiler"`
	// Server holds artifact HTTP server settings.
	Server *ServerConfig `toml:"server" json:"server"`
	// Check holds settings for the check command.
	Check *CheckConfig `toml:"check" json:"check"`
	// Sources are the remote rule lists to fetch. Each list must have a "name";
	// the URL is derived from general.url_template unless "url" is set explicitly.
	Sources []*Source `toml:"source,omitempty" json:"source,omitempty"`
	// Categories are the rule sets to export. Every category reads one source
	// and may exclude entries covered by another source's suffixes.
	Categories []*Category `toml:"category,omitempty" json:"category,omitempty"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// RulesDir is the directory for fetched source lists.
	RulesDir string `toml:"rules_dir" json:"rules_dir" validate:"required"`
	// URLTemplate builds a source URL from its name. Available variable: {{name}}.
	URLTemplate string `toml:"url_template" json:"url_template" validate:"omitempty,url_template"`
}

type OutputConfig struct {
	// ClashDir is the directory for Clash/Mihomo rule-provider YAML files.
	ClashDir string `toml:"clash_dir" json:"clash_dir" validate:"required"`
	// SingboxDir is the directory for sing-box rule-set source JSON files.
	SingboxDir string `toml:"singbox_dir" json:"singbox_dir" validate:"required"`
	// SRSDir is the directory for compiled binary rule-set artifacts.
	SRSDir string `toml:"srs_dir" json:"srs_dir" validate:"required"`
}

type CompilerConfig struct {
	// Enabled toggles the best-effort compile step (default: true).
	Enabled bool `toml:"enabled" json:"enabled"`
	// Binary is the compiler executable looked up on PATH (default: sing-box).
	Binary string `toml:"binary" json:"binary" validate:"required_if=Enabled true"`
	// Args is the argument vector passed to the binary.
	// Available variables: {{input}}, {{output}}.
	Args []string `toml:"args" json:"args" validate:"required_if=Enabled true"`
}

type ServerConfig struct {
	// ListenAddr is the bind address for the serve command (default: :8080).
	ListenAddr string `toml:"listen_addr" json:"listen_addr" validate:"required"`
}

type CheckConfig struct {
	// DNSUpstream is the UDP DNS server used by "check -resolve" (host or host:port).
	DNSUpstream string `toml:"dns_upstream" json:"dns_upstream"`
}

type Source struct {
	// Name identifies the source; the fetched file is <rules_dir>/<name>.txt.
	Name string `toml:"name" json:"name" validate:"required,rule_name"`
	// URL overrides general.url_template for this source (optional).
	URL string `toml:"url,omitempty" json:"url,omitempty" validate:"omitempty,url"`
}

type Category struct {
	// Name identifies the exported artifacts (<name>.yaml, <name>.json, <name>.srs).
	Name string `toml:"name" json:"name" validate:"required,rule_name"`
	// Kind is the entry type of this category: "domain" or "ipcidr".
	Kind CategoryKind `toml:"kind" json:"kind" validate:"required,oneof=domain ipcidr"`
	// Source is the name of the source list this category is built from.
	Source string `toml:"source" json:"source" validate:"required"`
	// ExcludeSuffixesFrom drops entries covered by this source's suffixes
	// (domain categories only, optional).
	ExcludeSuffixesFrom string `toml:"exclude_suffixes_from,omitempty" json:"exclude_suffixes_from,omitempty"`
}

// GetConfigDir returns the directory containing the loaded configuration file.
func (c *Config) GetConfigDir() string {
	return filepath.Dir(c._absConfigFilePath)
}

// absPath resolves a configured path relative to the configuration file directory.
func (c *Config) absPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.GetConfigDir(), path)
}

// GetAbsRulesDir returns the absolute directory for fetched source lists.
func (c *Config) GetAbsRulesDir() string {
	return c.absPath(c.General.RulesDir)
}

// GetAbsClashDir returns the absolute directory for Clash YAML artifacts.
func (c *Config) GetAbsClashDir() string {
	return c.absPath(c.Output.ClashDir)
}

// GetAbsSingboxDir returns the absolute directory for rule-set source JSON artifacts.
func (c *Config) GetAbsSingboxDir() string {
	return c.absPath(c.Output.SingboxDir)
}

// GetAbsSRSDir returns the absolute directory for compiled rule-set artifacts.
func (c *Config) GetAbsSRSDir() string {
	return c.absPath(c.Output.SRSDir)
}

// GetSourceByName returns the source with the given name, or nil.
func (c *Config) GetSourceByName(name string) *Source {
	for _, s := range c.Sources {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SourceFilePath returns the absolute path of a fetched source list.
func (c *Config) SourceFilePath(s *Source) string {
	return filepath.Join(c.GetAbsRulesDir(), s.Name+".txt")
}
