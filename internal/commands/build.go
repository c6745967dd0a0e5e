package commands

import (
	"flag"

	"github.com/vkotov/rulesmith/internal/config"
	"github.com/vkotov/rulesmith/internal/pipeline"
)

// BuildCommand runs the full pipeline: fetch, load, reduce, export, compile.
type BuildCommand struct {
	fs        *flag.FlagSet
	cfg       *config.Config
	skipFetch bool
}

func CreateBuildCommand() *BuildCommand {
	c := &BuildCommand{
		fs: flag.NewFlagSet("build", flag.ExitOnError),
	}
	c.fs.BoolVar(&c.skipFetch, "skip-fetch", false, "Export from already-fetched lists without downloading")
	return c
}

func (c *BuildCommand) Name() string {
	return c.fs.Name()
}

func (c *BuildCommand) Init(args []string, ctx *AppContext) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *BuildCommand) Run() error {
	p := pipeline.New(c.cfg)
	if c.skipFetch {
		return p.Export()
	}
	return p.Run()
}
