package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/color"
	"github.com/yogaland/yogaland/icon"
	"github.com/yogaland/yogaland/playback"
	"github.com/yogaland/yogaland/style"
	"github.com/yogaland/yogaland/util"
)

// detailHeight is the number of lines reserved for the detail pane.
const detailHeight = 6

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
	detailStyle           = lipgloss.NewStyle().Padding(0, 2).Foreground(style.Subtext)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case browseState:
		output = b.viewBrowse()
	case searchState:
		output = b.viewSearch()
	case playerState:
		output = b.viewPlayer()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + b.status,
		},
	)
}

func (b *statefulBubble) viewBrowse() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		listExtraPaddingStyle.Render(b.videosC.View()),
		b.viewDetail(),
	)
}

// viewDetail renders the featured line and the selected video's description.
func (b *statefulBubble) viewDetail() string {
	featured := lo.Map(catalog.Featured(b.videos), func(v *catalog.Video, _ int) string {
		return v.Title
	})

	lines := []string{
		style.Fg(style.Yellow)("Featured: ") + strings.Join(featured, " • "),
	}

	if video, ok := b.selectedVideo().Get(); ok {
		lines = append(lines, "", style.Bold(video.Title))
		if video.Genre != "" {
			lines = append(lines, style.Faint(video.Genre))
		}
		lines = append(lines, wrap.String(video.Description, max(b.width, 20)))
	}

	return detailStyle.Render(strings.Join(lines, "\n"))
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search Videos"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint(fmt.Sprintf("%s %s (tab)", icon.Get(icon.Search), suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewPlayer() string {
	s := b.snapshot

	var title string
	if s.Video != nil {
		title = s.Video.Title
	}

	var lines []string
	switch s.Mode {
	case playback.Loading:
		what := "video"
		if s.Slot != "" {
			what = "ad"
		}
		lines = []string{
			style.Title(title),
			"",
			fmt.Sprintf("%sLoading %s...", b.spinnerC.View(), what),
		}
	case playback.PlayingAd:
		lines = b.viewAd(s)
	case playback.PlayingMain:
		lines = b.viewMain(title, s)
	case playback.Error:
		lines = []string{
			style.ErrorTitle("Playback error"),
			"",
			icon.Get(icon.Fail) + " " + wrap.String(s.ErrorMessage, max(b.width, 20)),
			"",
			style.Faint("Press r to retry or esc to go back"),
		}
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewAd(s playback.Snapshot) []string {
	lines := []string{
		style.Tag(style.Base, slotColor(s.Slot))(icon.Get(icon.Ad) + " " + adBanner(s.Slot)),
		"",
	}

	if s.Ad != nil {
		lines = append(lines, style.Bold(s.Ad.Title))
		if s.Ad.Advertiser != "" {
			lines = append(lines, style.Faint(s.Ad.Advertiser))
		}
		if s.Ad.ClickThrough != "" {
			lines = append(lines, style.Faint("Press o to visit the advertiser"))
		}
	}

	lines = append(lines,
		"",
		b.progressC.ViewAs(ratio(s.Position, s.Duration)),
		style.Countdown(s.Remaining(), 5, fmt.Sprintf("Ad ends in %ds", s.Remaining())),
	)

	if s.Slot == catalog.MidRoll {
		lines = append(lines, style.Faint(fmt.Sprintf("Resuming at %s", util.FormatClock(s.ResumeAt))))
	}

	return append(lines, "", skipHint(s))
}

func (b *statefulBubble) viewMain(title string, s playback.Snapshot) []string {
	state := icon.Get(icon.Play)
	if s.Paused {
		state = icon.Get(icon.Pause)
	}

	lines := []string{
		style.Title(title),
		"",
		b.progressC.ViewAs(ratio(s.Position, s.Duration)),
		style.Fg(color.Orange)(markerLine(s.Markers, s.Duration, b.progressC.Width)),
		fmt.Sprintf("%s  %s / %s", state, util.FormatClock(s.Position), util.FormatClock(s.Duration)),
	}

	if s.ControlsVisible {
		lines = append(lines, "", b.helpC.FullHelpView(b.keymap.FullHelp()))
	}

	return lines
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Something went wrong:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

func adBanner(slot catalog.SlotType) string {
	switch slot {
	case catalog.MidRoll:
		return "Commercial Break"
	case catalog.PostRoll:
		return "Thank you for watching"
	default:
		return "Advertisement"
	}
}

func slotColor(slot catalog.SlotType) lipgloss.Color {
	switch slot {
	case catalog.MidRoll:
		return style.MidRollColor
	case catalog.PostRoll:
		return style.PostRollColor
	default:
		return style.PreRollColor
	}
}

func skipHint(s playback.Snapshot) string {
	if s.CanSkip {
		return style.Fg(style.SuccessColor)(icon.Get(icon.Skip) + " Press enter to skip")
	}
	if s.SkipIn > 0 && s.SkipIn < s.Remaining() {
		return style.Faint(fmt.Sprintf("Skip in %ds", s.SkipIn))
	}
	return ""
}

// markerLine places a marker under the progress bar for every scheduled break.
func markerLine(markers []int, duration, width int) string {
	if duration <= 0 || width <= 0 {
		return ""
	}

	line := []rune(strings.Repeat(" ", width))
	for _, m := range markers {
		i := util.Clamp(m*width/duration, 0, width-1)
		line[i] = '▲'
	}

	return strings.TrimRight(string(line), " ")
}

func ratio(position, duration int) float64 {
	if duration <= 0 {
		return 0
	}
	return util.Clamp(float64(position)/float64(duration), 0, 1)
}
