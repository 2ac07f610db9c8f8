package cmd

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/ytune-cli/ytune/mini"
)

func init() {
	rootCmd.AddCommand(miniCmd)

	miniCmd.Flags().StringP("query", "q", "", "Search for this query instead of asking for one first")
	lo.Must0(miniCmd.RegisterFlagCompletionFunc("query", completionQueries))
}

// miniCmd drives search and playback through a sequence of prompts.
var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Search and play through simple prompts instead of the full interface",
	Long:  `Ask for a query, pick a result from a list, then control playback from a menu.`,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		options := mini.Options{
			Query: lo.Must(cmd.Flags().GetString("query")),
		}
		handleErr(mini.Run(&options))
	},
}
