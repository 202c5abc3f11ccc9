package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yogaland/yogaland/catalog/remote"
	"github.com/yogaland/yogaland/color"
	"github.com/yogaland/yogaland/icon"
	"github.com/yogaland/yogaland/key"
	"github.com/yogaland/yogaland/player"
	"github.com/yogaland/yogaland/provider"
	"github.com/yogaland/yogaland/style"
)

// CheckDependencies exits when the configured player needs mpv and mpv is missing.
func CheckDependencies() {
	if !needsMPV() {
		return
	}

	if _, err := exec.LookPath("mpv"); err != nil {
		printMissingDependencyError("mpv")
		os.Exit(1)
	}
}

func needsMPV() bool {
	name := viper.GetString(key.Player)
	return name == "" || name == player.NameMPV
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = "brew install mpv"
	case "linux":
		installCmd = "sudo apt install mpv"
	case "windows":
		installCmd = "scoop install mpv"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolP("media", "m", false, "Also check that every video in the catalog is reachable")
	checkCmd.Flags().Duration("timeout", 10*time.Second, "Timeout for each network check")
}

// checkCmd reports whether playback can work on this machine.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the player, the catalog and optionally the media",
	Run: func(cmd *cobra.Command, args []string) {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		media, _ := cmd.Flags().GetBool("media")

		failed := false
		report := func(what string, err error) {
			if err != nil {
				failed = true
				cmd.Printf("%s %s: %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), what, err)
				return
			}
			cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), what)
		}

		if needsMPV() {
			_, err := exec.LookPath("mpv")
			report("mpv installed", err)
		} else {
			report(fmt.Sprintf("player %q", viper.GetString(key.Player)), nil)
		}

		source, err := provider.Default()
		if err != nil {
			report("catalog", err)
			os.Exit(1)
		}

		if client, ok := source.(*remote.Client); ok {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			report("catalog API healthy", client.Healthy(ctx))
			cancel()
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		videos, err := source.Videos(ctx)
		cancel()
		report(fmt.Sprintf("catalog lists %d videos", len(videos)), err)

		if media {
			for _, v := range videos {
				ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
				report(fmt.Sprintf("media of %q reachable", v.Title), remote.Reachable(ctx, nil, v.Source))
				cancel()
			}
		}

		if failed {
			os.Exit(1)
		}
	},
}
