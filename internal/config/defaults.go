package config

// Built-in configuration mirrors the Loyalsoldier clash-rules release layout:
// four sources (direct, private, cncidr, google) where google is fetched only
// to exclude its suffixes from the direct category.

const defaultURLTemplate = "https://raw.githubusercontent.com/Loyalsoldier/clash-rules/release/{{name}}.txt"

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		ConfigVersion: 1,
		General: &GeneralConfig{
			RulesDir:    "rules",
			URLTemplate: defaultURLTemplate,
		},
		Output: &OutputConfig{
			ClashDir:   "out/clash",
			SingboxDir: "out/singbox",
			SRSDir:     "out/srs",
		},
		Compiler: &CompilerConfig{
			Enabled: true,
			Binary:  "sing-box",
			Args:    []string{"rule-set", "compile", "--output", "{{output}}", "{{input}}"},
		},
		Server: &ServerConfig{
			ListenAddr: ":8080",
		},
		Check: &CheckConfig{
			DNSUpstream: "8.8.8.8",
		},
		Sources: []*Source{
			{Name: "direct"},
			{Name: "private"},
			{Name: "cncidr"},
			{Name: "google"},
		},
		Categories: []*Category{
			{Name: "direct", Kind: KindDomain, Source: "direct", ExcludeSuffixesFrom: "google"},
			{Name: "private", Kind: KindDomain, Source: "private"},
			{Name: "cncidr", Kind: KindIPCIDR, Source: "cncidr"},
		},
	}
}

// applyDefaults fills optional sections left out of the config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.General == nil {
		c.General = def.General
	} else if c.General.URLTemplate == "" {
		c.General.URLTemplate = def.General.URLTemplate
	}
	if c.Output == nil {
		c.Output = def.Output
	}
	if c.Compiler == nil {
		c.Compiler = def.Compiler
	} else {
		if c.Compiler.Binary == "" {
			c.Compiler.Binary = def.Compiler.Binary
		}
		if len(c.Compiler.Args) == 0 {
			c.Compiler.Args = def.Compiler.Args
		}
	}
	if c.Server == nil {
		c.Server = def.Server
	}
	if c.Check == nil {
		c.Check = def.Check
	}
}
