package commands

import (
	"context"
	"flag"
	"fmt"
	"net/netip"
	"time"

	"github.com/vkotov/rulesmith/internal/config"
	"github.com/vkotov/rulesmith/internal/log"
	"github.com/vkotov/rulesmith/internal/payload"
	"github.com/vkotov/rulesmith/internal/resolve"
	"github.com/vkotov/rulesmith/internal/rules"
)

// CheckCommand reports which configured categories cover a domain or IP.
// Domain categories are matched by suffix/exact rules, CIDR categories by
// address containment. With -resolve, the domain's addresses are looked up
// via the configured DNS upstream and matched against CIDR categories too.
type CheckCommand struct {
	fs         *flag.FlagSet
	cfg        *config.Config
	target     string
	useResolve bool
}

func CreateCheckCommand() *CheckCommand {
	c := &CheckCommand{
		fs: flag.NewFlagSet("check", flag.ExitOnError),
	}
	c.fs.BoolVar(&c.useResolve, "resolve", false, "Resolve the domain and match its addresses against CIDR categories")
	return c
}

func (c *CheckCommand) Name() string {
	return c.fs.Name()
}

func (c *CheckCommand) Init(args []string, ctx *AppContext) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	if c.fs.NArg() != 1 {
		return fmt.Errorf("usage: check [-resolve] <domain|ip>")
	}
	c.target = c.fs.Arg(0)

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *CheckCommand) Run() error {
	if addr, err := netip.ParseAddr(c.target); err == nil {
		return c.checkAddrs([]netip.Addr{addr})
	}
	return c.checkDomain(c.target)
}

func (c *CheckCommand) checkDomain(domain string) error {
	matched := false

	for _, cat := range c.cfg.Categories {
		if cat.Kind != config.KindDomain {
			continue
		}

		entries, err := c.loadCategoryEntries(cat)
		if err != nil {
			return err
		}

		if rules.NewDomainMatcher(entries).Matches(domain) {
			log.Infof("Domain %s is covered by category \"%s\"", domain, cat.Name)
			matched = true
		}
	}

	if !matched {
		log.Infof("Domain %s is not covered by any domain category", domain)
	}

	if !c.useResolve {
		return nil
	}

	resolver, err := resolve.NewResolver(c.cfg.Check.DNSUpstream)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	addrs, err := resolver.Lookup(ctx, domain)
	if err != nil {
		return err
	}
	if len(addrs) == 0 {
		log.Warnf("Domain %s did not resolve to any address via %s", domain, resolver.Address())
		return nil
	}

	log.Infof("Domain %s resolved to %v via %s", domain, addrs, resolver.Address())
	return c.checkAddrs(addrs)
}

func (c *CheckCommand) checkAddrs(addrs []netip.Addr) error {
	matched := false

	for _, cat := range c.cfg.Categories {
		if cat.Kind != config.KindIPCIDR {
			continue
		}

		entries, err := c.loadCategoryEntries(cat)
		if err != nil {
			return err
		}

		matcher := rules.NewCIDRMatcher(entries)
		if matcher.Skipped > 0 {
			log.Debugf("Category \"%s\": skipped %d unparseable entries", cat.Name, matcher.Skipped)
		}

		for _, addr := range addrs {
			if matcher.Contains(addr) {
				log.Infof("Address %s is covered by category \"%s\"", addr, cat.Name)
				matched = true
				break
			}
		}
	}

	if !matched {
		log.Infof("No address is covered by any CIDR category")
	}
	return nil
}

// loadCategoryEntries loads the category's source list from the rules
// directory, applying the category's suffix exclusion if configured.
func (c *CheckCommand) loadCategoryEntries(cat *config.Category) ([]string, error) {
	src := c.cfg.GetSourceByName(cat.Source)
	entries, err := payload.ParseFile(c.cfg.SourceFilePath(src), src.Name)
	if err != nil {
		return nil, fmt.Errorf("%v (run \"sync\" first?)", err)
	}

	if cat.ExcludeSuffixesFrom != "" {
		exclSrc := c.cfg.GetSourceByName(cat.ExcludeSuffixesFrom)
		exclEntries, err := payload.ParseFile(c.cfg.SourceFilePath(exclSrc), exclSrc.Name)
		if err != nil {
			return nil, fmt.Errorf("%v (run \"sync\" first?)", err)
		}
		entries = rules.Reduce(entries, rules.NewSuffixSet(exclEntries))
	}
	return entries, nil
}
