package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vkotov/rulesmith/internal/api"
	"github.com/vkotov/rulesmith/internal/config"
)

// ServeCommand serves the generated artifacts over HTTP.
type ServeCommand struct {
	fs     *flag.FlagSet
	cfg    *config.Config
	listen string
}

func CreateServeCommand() *ServeCommand {
	c := &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ExitOnError),
	}
	c.fs.StringVar(&c.listen, "listen", "", "Bind address (overrides server.listen_addr)")
	return c
}

func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.listen == "" {
		c.listen = cfg.Server.ListenAddr
	}
	return nil
}

func (c *ServeCommand) Run() error {
	server := api.NewServer(c.cfg, c.listen)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Stop(ctx)
	}
}
