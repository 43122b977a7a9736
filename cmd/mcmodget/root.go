package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mcmodget/internal/app"
	"mcmodget/internal/browser"
	"mcmodget/internal/config"
	"mcmodget/internal/download"
	"mcmodget/internal/fetcher"
	"mcmodget/internal/identity"
	"mcmodget/internal/observability"
	"mcmodget/internal/scraper"
)

// version is set via -ldflags at release time.
var version = "dev"

var configPath string

// orchestrator is wired once in PersistentPreRunE and shared by the
// subcommands.
var orchestrator *app.Orchestrator

var rootCmd = &cobra.Command{
	Use:     "mcmodget",
	Short:   "mcmodget searches CurseForge for Minecraft mods and downloads the best match.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		logger, err := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel)
		if err != nil {
			return err
		}

		// One identity for the whole run: every HTTP request and the
		// browser session present the same client.
		id := identity.Random()

		f := fetcher.NewFetcher(cfg, id, logger)
		scr := scraper.NewScraper(cfg.GetSelectors(), cfg.Site.BaseURL)
		nav := browser.NewNavigator(cfg, scr, id, logger)
		dl := download.NewDownloader(f, logger)

		orchestrator = app.NewOrchestrator(cfg, logger, f, scr, nav, dl)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file overriding built-in defaults")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
