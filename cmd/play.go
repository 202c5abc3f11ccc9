package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/color"
	"github.com/yogaland/yogaland/icon"
	"github.com/yogaland/yogaland/key"
	"github.com/yogaland/yogaland/playback"
	"github.com/yogaland/yogaland/player"
	"github.com/yogaland/yogaland/provider"
	"github.com/yogaland/yogaland/style"
	"github.com/yogaland/yogaland/util"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("player", "p", "", "Media player backend")
	lo.Must0(playCmd.RegisterFlagCompletionFunc("player", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return player.Available(), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.Player, playCmd.Flags().Lookup("player")))
}

// playCmd plays one video with its ad breaks and prints progress to the terminal.
var playCmd = &cobra.Command{
	Use:     "play [id]",
	Short:   "Play a video without the browse screen",
	Args:    cobra.MaximumNArgs(1),
	Example: "  yogaland play 3\n  yogaland play --no-ads",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		source, err := provider.Default()
		handleErr(err)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var video *catalog.Video
		if len(args) == 1 {
			video, err = source.Video(ctx, args[0])
			if errors.Is(err, catalog.ErrNotFound) {
				err = fmt.Errorf("no video with id %q", args[0])
			}
		} else {
			video, err = pickVideo(cmd, source)
		}
		handleErr(err)

		library := playback.NewLibrary(source)
		defer util.Ignore(library.Close)

		host := newConsoleHost(cmd.OutOrStdout())
		session, err := library.NewSession(ctx, video, host)
		handleErr(err)

		session.Start(ctx)
		superviseSession(session, host.failures, askRetry)
		session.Wait()

		_, _ = fmt.Fprintln(cmd.OutOrStdout())
		if session.Reason() == playback.Completed {
			cmd.Printf("%s Thank you for watching %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(video.Title))
		}
	},
}

func pickVideo(cmd *cobra.Command, source catalog.Provider) (*catalog.Video, error) {
	videos, err := source.Videos(cmd.Context())
	if err != nil {
		return nil, err
	}

	if len(videos) == 0 {
		return nil, errors.New("the catalog is empty")
	}

	var index int
	prompt := &survey.Select{
		Message: "Pick a video",
		Options: lo.Map(videos, func(v *catalog.Video, _ int) string {
			return v.Title
		}),
		Description: func(_ string, i int) string {
			return fmt.Sprintf("%s • %s", videos[i].Category, util.FormatClock(videos[i].Duration))
		},
	}

	if err := survey.AskOne(prompt, &index); err != nil {
		return nil, err
	}

	return videos[index], nil
}

// controlledSession is the part of a session the play command steers.
type controlledSession interface {
	Done() <-chan struct{}
	Retry()
	Back()
}

// superviseSession waits for the session to end. Each time the video fails to
// load, retry decides between loading it again and leaving.
func superviseSession(session controlledSession, failures <-chan string, retry func(message string) bool) {
	for {
		select {
		case <-session.Done():
			return
		case message := <-failures:
			if retry(message) {
				session.Retry()
				continue
			}
			session.Back()
			return
		}
	}
}

func askRetry(string) bool {
	var again bool
	prompt := &survey.Confirm{Message: "Try again?", Default: true}
	if err := survey.AskOne(prompt, &again); err != nil {
		return false
	}
	return again
}

// consoleHost redraws one status line per snapshot and reports load failures.
type consoleHost struct {
	out      io.Writer
	last     string
	lastMode playback.Mode
	failures chan string
}

func newConsoleHost(out io.Writer) *consoleHost {
	return &consoleHost{out: out, failures: make(chan string, 1)}
}

func (h *consoleHost) Changed(s playback.Snapshot) {
	entered := s.Mode == playback.Error && h.lastMode != playback.Error
	h.lastMode = s.Mode

	line := statusLine(s)
	if line != h.last {
		h.last = line
		_, _ = fmt.Fprintf(h.out, "\r\033[K%s", line)
	}

	if entered {
		// called with the session locked, so never block
		select {
		case h.failures <- s.ErrorMessage:
		default:
		}
	}
}

func (h *consoleHost) Ended(playback.EndReason) {}

func statusLine(s playback.Snapshot) string {
	switch s.Mode {
	case playback.Loading:
		if s.Slot != "" {
			return icon.Get(icon.Progress) + " Loading ad..."
		}
		return icon.Get(icon.Progress) + " Loading video..."
	case playback.PlayingAd:
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%s %s", icon.Get(icon.Ad), adBreakTitle(s.Slot)))
		if s.Ad != nil {
			b.WriteString(": " + s.Ad.Title)
		}
		b.WriteString(fmt.Sprintf(" (%ds left)", s.Remaining()))
		if s.CanSkip {
			b.WriteString(" skippable")
		} else if s.SkipIn > 0 && s.SkipIn < s.Remaining() {
			b.WriteString(fmt.Sprintf(" skip in %ds", s.SkipIn))
		}
		return b.String()
	case playback.PlayingMain:
		state := icon.Get(icon.Play)
		if s.Paused {
			state = icon.Get(icon.Pause)
		}
		return fmt.Sprintf("%s %s / %s", state, util.FormatClock(s.Position), util.FormatClock(s.Duration))
	case playback.Error:
		return icon.Get(icon.Fail) + " " + s.ErrorMessage
	default:
		return ""
	}
}

func adBreakTitle(slot catalog.SlotType) string {
	switch slot {
	case catalog.MidRoll:
		return "Commercial Break"
	case catalog.PostRoll:
		return "Thank you for watching"
	default:
		return "Advertisement"
	}
}
