// Package pipeline orchestrates the full run: fetch sources, load payloads,
// apply suffix exclusions and export every configured category.
//
// The run is strictly sequential. Malformed sources abort it before any
// artifact is written; compiler problems never abort it.
package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/vkotov/rulesmith/internal/config"
	"github.com/vkotov/rulesmith/internal/export"
	"github.com/vkotov/rulesmith/internal/fetch"
	"github.com/vkotov/rulesmith/internal/log"
	"github.com/vkotov/rulesmith/internal/metrics"
	"github.com/vkotov/rulesmith/internal/payload"
	"github.com/vkotov/rulesmith/internal/rules"
	"github.com/vkotov/rulesmith/internal/srs"
	"github.com/vkotov/rulesmith/internal/utils"
)

type Pipeline struct {
	cfg      *config.Config
	compiler *srs.Compiler
}

func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		compiler: srs.NewCompiler(cfg.Compiler.Binary, cfg.Compiler.Args),
	}
}

// Fetch downloads every configured source list.
func (p *Pipeline) Fetch() error {
	return fetch.FetchAll(p.cfg)
}

// Run executes the full pipeline: fetch, load, reduce, export, compile.
func (p *Pipeline) Run() error {
	start := time.Now()
	err := p.run()
	metrics.ObserveBuild(start, err)
	return err
}

func (p *Pipeline) run() error {
	if err := p.Fetch(); err != nil {
		return err
	}
	return p.Export()
}

// Export builds every category from the already-fetched source lists.
func (p *Pipeline) Export() error {
	cfg := p.cfg

	for _, dir := range []string{cfg.GetAbsClashDir(), cfg.GetAbsSingboxDir(), cfg.GetAbsSRSDir()} {
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("failed to create output directory %s: %v", dir, err)
		}
	}

	// Load every referenced payload before writing anything, so a malformed
	// source aborts the run with no partial output.
	payloads, err := p.loadPayloads()
	if err != nil {
		return err
	}

	for _, cat := range cfg.Categories {
		entries := payloads[cat.Source]

		if cat.ExcludeSuffixesFrom != "" {
			excl := rules.NewSuffixSet(payloads[cat.ExcludeSuffixesFrom])
			before := len(entries)
			entries = rules.Reduce(entries, excl)
			log.Infof("Category \"%s\": excluded %d of %d entries covered by \"%s\"",
				cat.Name, before-len(entries), before, cat.ExcludeSuffixesFrom)
		} else {
			entries = cleanAll(entries)
		}

		if err := p.exportCategory(cat, entries); err != nil {
			return err
		}
	}

	p.compileAll()
	return nil
}

// loadPayloads parses every source referenced by a category.
func (p *Pipeline) loadPayloads() (map[string][]string, error) {
	referenced := make(map[string]bool)
	for _, cat := range p.cfg.Categories {
		referenced[cat.Source] = true
		if cat.ExcludeSuffixesFrom != "" {
			referenced[cat.ExcludeSuffixesFrom] = true
		}
	}

	payloads := make(map[string][]string, len(referenced))
	for _, src := range p.cfg.Sources {
		if !referenced[src.Name] {
			continue
		}
		entries, err := payload.ParseFile(p.cfg.SourceFilePath(src), src.Name)
		if err != nil {
			return nil, err
		}
		log.Debugf("Loaded %d entries from list \"%s\"", len(entries), src.Name)
		payloads[src.Name] = entries
	}
	return payloads, nil
}

func (p *Pipeline) exportCategory(cat *config.Category, entries []string) error {
	cfg := p.cfg

	clashPath := filepath.Join(cfg.GetAbsClashDir(), cat.Name+".yaml")
	if err := export.WriteClashProvider(clashPath, entries); err != nil {
		return err
	}
	log.Infof("Category \"%s\": wrote %s", cat.Name, clashPath)

	var rs export.RuleSet
	switch cat.Kind {
	case config.KindIPCIDR:
		rs = export.IPCIDRRuleSet(entries)
	default:
		rs = export.DomainRuleSet(entries)
	}

	singboxPath := filepath.Join(cfg.GetAbsSingboxDir(), cat.Name+".json")
	if err := export.WriteRuleSet(singboxPath, rs); err != nil {
		return err
	}
	log.Infof("Category \"%s\": wrote %s", cat.Name, singboxPath)

	return nil
}

// compileAll compiles a binary rule-set per category. Failures are reported
// but never abort the run, and every target is attempted.
func (p *Pipeline) compileAll() {
	if !p.cfg.Compiler.Enabled {
		log.Debugf("Compiler is disabled, skipping binary rule-sets")
		return
	}

	for _, cat := range p.cfg.Categories {
		input := filepath.Join(p.cfg.GetAbsSingboxDir(), cat.Name+".json")
		output := filepath.Join(p.cfg.GetAbsSRSDir(), cat.Name+".srs")

		result := p.compiler.Compile(input, output)
		switch result.Status {
		case srs.StatusToolUnavailable:
			log.Warnf("Compiler \"%s\" is not installed, skipping %s", p.cfg.Compiler.Binary, output)
		case srs.StatusFailed:
			log.Errorf("Failed to compile %s: %s", output, result.Message)
		default:
			log.Infof("Category \"%s\": compiled %s", cat.Name, output)
		}
	}
}

func cleanAll(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if c := rules.Clean(e); c != "" {
			out = append(out, c)
		}
	}
	return out
}
