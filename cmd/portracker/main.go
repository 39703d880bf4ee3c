// Package main provides the entry point for the portracker agent.
// portracker discovers TCP/UDP listening endpoints on a host and
// attributes them to their owning processes, containers, or platform
// applications.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mostafa-wahied/portracker-core/internal/bootstrap"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "/etc/portracker/config.yaml", "path to configuration file")
	once := flag.Bool("once", false, "run a single collection pass, print the report as JSON, and exit")
	showVersion := flag.Bool("version", false, "show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("portracker %s\n", version)
		os.Exit(0)
	}

	if err := run(*configPath, *once); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, once bool) error {
	app, err := bootstrap.InitializeApp(configPath)
	if err != nil {
		return fmt.Errorf("initializing agent: %w", err)
	}
	defer app.Logger.Close() //nolint:errcheck

	ctx := context.Background()

	if once {
		report, err := app.RunOnce(ctx)
		if err != nil {
			return fmt.Errorf("collection pass failed: %w", err)
		}
		return bootstrap.PrintJSON(report)
	}

	return app.Run(ctx)
}
