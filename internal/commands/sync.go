package commands

import (
	"flag"

	"github.com/vkotov/rulesmith/internal/config"
	"github.com/vkotov/rulesmith/internal/fetch"
)

// SyncCommand downloads the configured source lists without exporting.
type SyncCommand struct {
	fs  *flag.FlagSet
	cfg *config.Config
}

func CreateSyncCommand() *SyncCommand {
	return &SyncCommand{
		fs: flag.NewFlagSet("sync", flag.ExitOnError),
	}
}

func (c *SyncCommand) Name() string {
	return c.fs.Name()
}

func (c *SyncCommand) Init(args []string, ctx *AppContext) error {
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

func (c *SyncCommand) Run() error {
	return fetch.FetchAll(c.cfg)
}
