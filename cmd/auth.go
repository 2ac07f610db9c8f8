package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/ytune-cli/ytune/auth"
	"github.com/ytune-cli/ytune/color"
	"github.com/ytune-cli/ytune/config"
	"github.com/ytune-cli/ytune/icon"
	"github.com/ytune-cli/ytune/open"
	"github.com/ytune-cli/ytune/style"
)

const credentialsURL = "https://console.cloud.google.com/apis/credentials"

func init() {
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the YouTube Data API key stored in the system keyring",
}

func init() {
	authCmd.AddCommand(authSetKeyCmd)
	authSetKeyCmd.Flags().BoolP("browser", "b", false, "Open the Google Cloud credentials page first")
}

var authSetKeyCmd = &cobra.Command{
	Use:   "set-key [key]",
	Short: "Store the API key in the system keyring",
	Long: `Store the YouTube Data API v3 key in the system keyring.
The key is asked for when it is not passed as an argument.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var apiKey string

		if len(args) == 1 {
			apiKey = args[0]
		} else {
			if lo.Must(cmd.Flags().GetBool("browser")) {
				if err := open.Start(credentialsURL); err != nil {
					fmt.Println("Please open the following URL in your browser:")
					fmt.Println(credentialsURL)
				}
			}

			prompt := survey.Password{
				Message: "YouTube Data API key:",
				Help:    "Create one at " + credentialsURL,
			}
			handleErr(survey.AskOne(&prompt, &apiKey))
		}

		apiKey = strings.TrimSpace(apiKey)
		if apiKey == "" {
			handleErr(errors.New("api key is empty"))
		}

		handleErr(auth.SetAPIKey(apiKey))
		fmt.Printf(
			"%s stored key %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Yellow)(config.Mask(apiKey)),
		)
	},
}

func init() {
	authCmd.AddCommand(authDeleteKeyCmd)
}

var authDeleteKeyCmd = &cobra.Command{
	Use:     "delete-key",
	Short:   "Remove the API key from the system keyring",
	Aliases: []string{"logout"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteAPIKey())
		fmt.Printf("%s key removed from keyring\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API key is read from",
	Run: func(cmd *cobra.Command, args []string) {
		apiKey, source := auth.APIKey()

		if source == auth.SourceNone {
			fmt.Printf(
				"%s no API key configured, run %s\n",
				style.Fg(color.Red)(icon.Get(icon.Fail)),
				style.Fg(color.Yellow)("ytune auth set-key"),
			)
			return
		}

		fmt.Printf(
			"%s using key %s from %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Yellow)(config.Mask(apiKey)),
			style.Fg(color.Purple)(string(source)),
		)
	},
}
