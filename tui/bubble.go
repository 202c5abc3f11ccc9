package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/internal/ui"
	"github.com/yogaland/yogaland/key"
	"github.com/yogaland/yogaland/playback"
	"github.com/yogaland/yogaland/style"
	"github.com/yogaland/yogaland/util"
)

// statefulBubble holds the browse screen, the search prompt and the player screen.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	videosC   list.Model
	progressC progress.Model
	helpC     help.Model

	ctx     context.Context
	library *playback.Library

	videos     []*catalog.Video
	categories []string
	// category indexes categories; -1 shows every video.
	category int
	query    string

	session    *playback.Session
	snapshot   playback.Snapshot
	generation int
	status     string

	snapshotChannel chan snapshotMsg
	endedChannel    chan endedMsg

	lastError        error
	width, height    int
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering the current state unless it is transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, playerState, errorState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if previous, ok := b.statesHistory.Pop().Get(); ok {
		b.setState(previous)
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	// room for the detail pane under the list
	listHeight := height - yy - detailHeight

	b.videosC.SetSize(listWidth, max(listHeight, 5))
	b.videosC.Help.Width = listWidth

	b.progressC.Width = width - x
	b.inputC.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	return b.spinnerC.Tick
}

func (b *statefulBubble) stopLoading() {
	b.loading = false
}

// selectedVideo returns the highlighted video on the browse screen.
func (b *statefulBubble) selectedVideo() mo.Option[*catalog.Video] {
	item, ok := b.videosC.SelectedItem().(*listItem)
	if !ok {
		return mo.None[*catalog.Video]()
	}
	return mo.Some(item.video)
}

func newBubble(ctx context.Context, library *playback.Library, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{Limit: 16},
		keymap:        keymap,
		ctx:           ctx,
		library:       library,
		category:      -1,

		snapshotChannel: make(chan snapshotMsg, 1),
		endedChannel:    make(chan endedMsg, 1),

		notifier: &ui.Model{},
		options:  options,
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.videosC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.videosC.KeyMap = keymap.forList()
	bubble.videosC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.videosC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.videosC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
	bubble.videosC.Styles.NoItems = paddingStyle
	bubble.videosC.StatusMessageLifetime = time.Hour * 999
	bubble.videosC.SetShowPagination(false)
	bubble.videosC.SetShowStatusBar(false)
	bubble.videosC.SetStatusBarItemName("video", "videos")

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "Search videos"
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = "> "

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	bubble.setTitle()

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
