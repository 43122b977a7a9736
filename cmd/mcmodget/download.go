package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mcmodget/internal/app"
)

var minecraftVersion string

func init() {
	downloadCmd.Flags().StringVar(&minecraftVersion, "minecraft-version", "1.7.10", "Minecraft version a file must be labeled compatible with (exact match)")
	rootCmd.AddCommand(downloadCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download [--minecraft-version=<version>] <mods>...",
	Short: "Download the best-matching file for each mod name.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}

		// A mod with no results or no compatible file is reported and
		// skipped; any other failure aborts the whole batch.
		for _, name := range args {
			path, err := orchestrator.DownloadBest(cmd.Context(), name, minecraftVersion, dir)
			switch {
			case errors.Is(err, app.ErrNoResults), errors.Is(err, app.ErrNoMatchingFile):
				fmt.Println(err.Error())
			case err != nil:
				return err
			default:
				fmt.Printf("Downloaded %s\n", path)
			}
		}
		return nil
	},
}
