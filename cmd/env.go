package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/ytune-cli/ytune/color"
	"github.com/ytune-cli/ytune/config"
	"github.com/ytune-cli/ytune/style"
	"github.com/ytune-cli/ytune/where"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// exposedEnv lists every environment variable ytune reads, sorted, and
// reports which of them hold secrets.
func exposedEnv() (names []string, secret map[string]bool) {
	secret = map[string]bool{config.EnvAPIKeyAlias: true}

	for _, k := range config.EnvExposed {
		field := config.Default[k]
		names = append(names, field.Env())
		if field.Secret {
			secret[field.Env()] = true
		}
	}

	names = append(names, where.EnvConfigPath, config.EnvAPIKeyAlias)
	slices.Sort(names)
	return slices.Compact(names), secret
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long:  `Display the collection of supported environment variables and their current process values.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		names, secret := exposedEnv()
		for _, env := range names {
			value := os.Getenv(env)
			present := value != ""

			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env))
			cmd.Print("=")

			switch {
			case !present:
				cmd.Println(style.Fg(color.Red)("unset"))
			case secret[env]:
				cmd.Println(style.Fg(color.Green)(config.Mask(value)))
			default:
				cmd.Println(style.Fg(color.Green)(value))
			}
		}
	},
}
