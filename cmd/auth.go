package cmd

import (
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/yogaland/yogaland/auth"
	"github.com/yogaland/yogaland/color"
	"github.com/yogaland/yogaland/icon"
	"github.com/yogaland/yogaland/style"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the token used for the remote catalog",
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authLoginCmd.Flags().StringP("token", "t", "", "API token; prompted for when omitted")
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API token in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		token := lo.Must(cmd.Flags().GetString("token"))

		if token == "" {
			prompt := &survey.Password{
				Message: "Catalog API token",
			}
			handleErr(survey.AskOne(prompt, &token, survey.WithValidator(survey.Required)))
		}

		token = strings.TrimSpace(token)
		if token == "" {
			handleErr(errors.New("empty token"))
		}

		handleErr(auth.SetToken(token))
		cmd.Printf("%s token saved\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	authCmd.AddCommand(authLogoutCmd)
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API token",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteToken())
		cmd.Printf("%s token removed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is stored",
	Run: func(cmd *cobra.Command, args []string) {
		_, source, err := auth.Token()
		switch {
		case errors.Is(err, auth.ErrNoToken):
			cmd.Printf("%s not logged in\n", style.Fg(color.Yellow)(icon.Get(icon.Warn)))
		case err != nil:
			handleErr(err)
		default:
			cmd.Printf("%s logged in, token from the %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), source)
		}
	},
}
