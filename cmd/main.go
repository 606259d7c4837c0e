package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lumina-ai/lumina-console/internal/cmd"
	"github.com/lumina-ai/lumina-console/internal/config"
	"github.com/lumina-ai/lumina-console/internal/version"
)

func main() {
	// Load settings from ~/.lumina/settings.json
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load settings: %v\n", err)
		settings = &config.Settings{}
	}

	// Container is created lazily by the commands after logging is initialized
	var cli cmd.CLI
	cli.SetSettings(settings)
	ctx := kong.Parse(&cli,
		kong.Name("lumina"),
		kong.Description(version.Tagline),
		kong.Vars{
			"version": version.Info(),
		},
		kong.UsageOnError(),
		kong.Bind(&cli),
	)
	defer cli.Close()

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cli.Close()
		os.Exit(1)
	}
}
