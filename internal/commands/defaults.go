package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/vkotov/rulesmith/internal/config"
	"github.com/vkotov/rulesmith/internal/log"
)

// DefaultsCommand writes the built-in configuration to the config path.
type DefaultsCommand struct {
	fs         *flag.FlagSet
	configPath string
	force      bool
}

func CreateDefaultsCommand() *DefaultsCommand {
	c := &DefaultsCommand{
		fs: flag.NewFlagSet("defaults", flag.ExitOnError),
	}
	c.fs.BoolVar(&c.force, "force", false, "Overwrite an existing configuration file")
	return c
}

func (c *DefaultsCommand) Name() string {
	return c.fs.Name()
}

func (c *DefaultsCommand) Init(args []string, ctx *AppContext) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	c.configPath = ctx.ConfigPath
	return nil
}

func (c *DefaultsCommand) Run() error {
	if _, err := os.Stat(c.configPath); err == nil && !c.force {
		return fmt.Errorf("configuration file %s already exists (use -force to overwrite)", c.configPath)
	}

	cfg := config.DefaultConfig()
	if err := cfg.SetConfigPath(c.configPath); err != nil {
		return err
	}
	if err := cfg.WriteConfig(); err != nil {
		return err
	}

	log.Infof("Wrote default configuration to %s", c.configPath)
	return nil
}
