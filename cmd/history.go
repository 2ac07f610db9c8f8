package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/ytune-cli/ytune/color"
	"github.com/ytune-cli/ytune/history"
	"github.com/ytune-cli/ytune/icon"
	"github.com/ytune-cli/ytune/style"
	"github.com/ytune-cli/ytune/util"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "How many tracks to show, 0 for all")
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently played tracks",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := history.Recent(lo.Must(cmd.Flags().GetInt("limit")))
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Printf("%s nothing played yet\n", icon.Get(icon.Info))
			return
		}

		for _, e := range entries {
			cmd.Printf(
				"%s %s %s\n  %s\n",
				style.Fg(color.Purple)(icon.Get(icon.Music)),
				style.Bold(util.Ellipsize(e.Title, 60)),
				style.Faint(fmt.Sprintf("by %s, %s", e.Channel, util.Quantify(e.Plays, "play", "plays"))),
				style.Fg(color.Blue)(e.URL()),
			)
		}
	},
}
