package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <mod>",
	Short: "Search for a mod and print results ranked by similarity.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		ranked, err := orchestrator.SearchRanked(cmd.Context(), query)
		if err != nil {
			return err
		}
		if len(ranked) == 0 {
			fmt.Printf("No mods found matching %q.\n", query)
			return nil
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Mod", "Author", "Last Updated On"})
		for _, s := range ranked {
			t.AppendRow(table.Row{s.Listing.Name, s.Listing.Author, s.Listing.Updated})
		}
		t.Render()
		return nil
	},
}
