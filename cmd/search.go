package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/ytune-cli/ytune/auth"
	"github.com/ytune-cli/ytune/filesystem"
	"github.com/ytune-cli/ytune/notify"
	"github.com/ytune-cli/ytune/search"
	"github.com/ytune-cli/ytune/util"
	"github.com/ytune-cli/ytune/youtube"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("query", "q", "", "The search query")
	searchCmd.Flags().BoolP("json", "j", false, "Format the results as a JSON array")
	searchCmd.Flags().Bool("json-schema", false, "Print the JSON schema of the results and exit")
	searchCmd.Flags().StringP("output", "o", "", "Write the results to this file instead of stdout")
	lo.Must0(searchCmd.RegisterFlagCompletionFunc("query", completionQueries))

	searchCmd.MarkFlagsMutuallyExclusive("query", "json-schema")
}

func resultsSchema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		return "youtube." + t.Name()
	}

	return reflector.Reflect([]*youtube.Result{})
}

// writeResults prints one tab-separated line per result, or a JSON array.
func writeResults(w io.Writer, results []*youtube.Result, asJson bool) error {
	if asJson {
		// always an array, never null
		if results == nil {
			results = []*youtube.Result{}
		}
		return json.NewEncoder(w).Encode(results)
	}

	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Channel, r.URL()); err != nil {
			return err
		}
	}

	return nil
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search once and print the results",
	Long: `Run a single search and print the results for scripts.

Each line holds the video ID, title, channel and watch URL separated by tabs.
Problems are reported on stderr; an empty output means nothing was found.`,
	Example: "  ytune search -q 'lofi hip hop' --json | jq '.[0].id'",
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("query") && !cmd.Flags().Changed("json-schema") {
			handleErr(fmt.Errorf("either --query or --json-schema must be set"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("json-schema")) {
			handleErr(json.NewEncoder(os.Stdout).Encode(resultsSchema()))
			return
		}

		var (
			q      = lo.Must(cmd.Flags().GetString("query"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			output = lo.Must(cmd.Flags().GetString("output"))
		)

		var writer io.Writer = os.Stdout

		if output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			writer = file
		}

		apiKey, _ := auth.APIKey()
		orchestrator := search.New(youtube.New(apiKey), notify.NewWriter(os.Stderr))

		results, ok := orchestrator.Search(context.Background(), q)
		if !ok {
			handleErr(fmt.Errorf("query is blank"))
		}

		handleErr(writeResults(writer, results, asJson))
	},
}
