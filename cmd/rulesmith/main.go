package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vkotov/rulesmith/internal/commands"
	"github.com/vkotov/rulesmith/internal/log"
)

func main() {
	ctx := &commands.AppContext{}

	flag.StringVar(&ctx.ConfigPath, "config", "rulesmith.toml", "Path to configuration file")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rulesmith - rule list fetcher and rule-set builder\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  sync                    Fetch the configured source lists\n")
		fmt.Fprintf(os.Stderr, "  build                   Fetch lists and export all artifacts\n")
		fmt.Fprintf(os.Stderr, "  serve                   Serve generated artifacts over HTTP\n")
		fmt.Fprintf(os.Stderr, "  check <domain|ip>       Report which categories cover a domain or IP\n")
		fmt.Fprintf(os.Stderr, "  defaults                Write the built-in configuration file\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	log.SetVerbose(ctx.Verbose)

	cmds := []commands.Runner{
		commands.CreateSyncCommand(),
		commands.CreateBuildCommand(),
		commands.CreateServeCommand(),
		commands.CreateCheckCommand(),
		commands.CreateDefaultsCommand(),
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Errorf("Unknown command: %s", subcommand)
	flag.Usage()
	os.Exit(1)
}
