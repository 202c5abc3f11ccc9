package cmd

import (
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/yogaland/yogaland/color"
	"github.com/yogaland/yogaland/config"
	"github.com/yogaland/yogaland/style"
	"github.com/yogaland/yogaland/where"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Show only variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Show only variables that are unset")
	envCmd.Flags().BoolP("describe", "d", false, "Show what each variable configures")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

type envVar struct {
	name        string
	description string
}

func envVars() []envVar {
	vars := lo.Map(config.EnvExposed, func(k string, _ int) envVar {
		field := config.Default[k]
		return envVar{name: field.Env(), description: field.Description}
	})

	vars = append(vars, envVar{name: where.EnvConfigPath, description: "Directory holding the configuration file"})

	slices.SortFunc(vars, func(a, b envVar) int {
		return strings.Compare(a.name, b.name)
	})
	return vars
}

// envCmd lists the environment variables the application reads.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables that override configuration",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))
		describe := lo.Must(cmd.Flags().GetBool("describe"))

		for _, env := range envVars() {
			value, present := os.LookupEnv(env.name)

			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			if describe {
				cmd.Println(style.Faint(strings.ReplaceAll(env.description, "\n", " ")))
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env.name))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}

			if describe {
				cmd.Println()
			}
		}
	},
}
