package tui

import (
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/internal/ui"
	"github.com/yogaland/yogaland/log"
	"github.com/yogaland/yogaland/open"
	"github.com/yogaland/yogaland/playback"
	"github.com/yogaland/yogaland/query"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.stopLoading()
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case spinner.TickMsg:
		if b.loading || b.state == playerState {
			var tick tea.Cmd
			b.spinnerC, tick = b.spinnerC.Update(msg)
			return b, tea.Batch(cmd, tick)
		}
		return b, cmd
	case snapshotMsg:
		if msg.generation == b.generation && b.session != nil {
			b.snapshot = msg.snapshot
		}
		return b, tea.Batch(cmd, b.waitForSnapshot())
	case endedMsg:
		return b, tea.Batch(cmd, b.onEnded(msg), b.waitForEnd())
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.closeSession()
			return b, tea.Quit
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case loadingState:
		stateCmd = b.updateLoading(msg)
	case browseState:
		stateCmd = b.updateBrowse(msg)
	case searchState:
		stateCmd = b.updateSearch(msg)
	case playerState:
		stateCmd = b.updatePlayer(msg)
	case errorState:
		stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

func (b *statefulBubble) onEnded(msg endedMsg) tea.Cmd {
	if msg.generation != b.generation || b.state != playerState {
		return nil
	}

	b.session = nil
	b.snapshot = playback.Snapshot{}
	b.previousState()

	if msg.reason == playback.Completed {
		return ui.Notify("Thank you for watching")
	}
	return nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.back) {
			b.stopLoading()
			// a pending session is dropped when it arrives
			b.generation++
			if b.statesHistory.Len() > 0 {
				b.previousState()
				return nil
			}
			return tea.Quit
		}
	case videosMsg:
		b.videos = msg
		b.categories = catalog.Categories(msg)
		if b.options != nil && b.options.Category != "" {
			for i, c := range b.categories {
				if strings.EqualFold(c, b.options.Category) {
					b.category = i
					break
				}
			}
		}

		b.stopLoading()
		b.newState(browseState)
		return b.applyFilter()
	case sessionMsg:
		if msg.generation != b.generation {
			return nil
		}

		b.stopLoading()
		b.session = msg.session
		b.snapshot = playback.Snapshot{Mode: playback.Loading, Video: b.selectedVideo().OrEmpty()}
		b.newState(playerState)
		b.session.Start(b.ctx)
		return b.spinnerC.Tick
	}

	return nil
}

func (b *statefulBubble) updateBrowse(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.play):
			video, ok := b.selectedVideo().Get()
			if !ok {
				return nil
			}

			log.Infof("opening %s", video.ID)
			b.status = "Preparing " + video.Title + "..."
			b.newState(loadingState)
			return tea.Batch(b.startLoading(), b.openSession(video))
		case bubblesKey.Matches(msg, b.keymap.search):
			b.inputC.SetValue(b.query)
			b.inputC.SetCursor(len(b.query))
			b.newState(searchState)
			return tea.Batch(b.inputC.Focus(), textinput.Blink)
		case bubblesKey.Matches(msg, b.keymap.category):
			return b.nextCategory()
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.query != "" {
				b.query = ""
				return b.applyFilter()
			}
			return nil
		}
	}

	b.videosC, cmd = b.videosC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			b.query = strings.TrimSpace(b.inputC.Value())
			if b.query != "" {
				go func(q string) {
					if err := query.Remember(q, 1); err != nil {
						log.Warn(err)
					}
				}(b.query)
			}
			b.inputC.Blur()
			b.previousState()
			return b.applyFilter()
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.SetCursor(len(b.inputC.Value()))
			return nil
		case bubblesKey.Matches(msg, b.keymap.back):
			b.inputC.Blur()
			b.previousState()
			return nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)

	if value := b.inputC.Value(); value != "" {
		b.searchSuggestion = query.Suggest(value)
	} else {
		b.searchSuggestion = mo.None[string]()
	}

	return cmd
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || b.session == nil {
		return nil
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		b.closeSession()
		return tea.Quit
	case bubblesKey.Matches(keyMsg, b.keymap.exit):
		b.session.Back()
	case bubblesKey.Matches(keyMsg, b.keymap.confirm):
		b.session.Confirm()
	case bubblesKey.Matches(keyMsg, b.keymap.playPause):
		b.session.TogglePause()
	case bubblesKey.Matches(keyMsg, b.keymap.seekForward):
		b.session.SeekForward()
	case bubblesKey.Matches(keyMsg, b.keymap.seekBackward):
		b.session.SeekBackward()
	case bubblesKey.Matches(keyMsg, b.keymap.skip):
		b.session.Skip()
	case bubblesKey.Matches(keyMsg, b.keymap.retry):
		b.session.Retry()
	case bubblesKey.Matches(keyMsg, b.keymap.openLink):
		if ad := b.snapshot.Ad; ad != nil && ad.ClickThrough != "" {
			if err := open.URL(ad.ClickThrough); err != nil {
				log.Warn(err)
				return ui.Warn("Could not open the advertiser link")
			}
			return ui.Notify("Opened " + ad.ClickThrough)
		}
	}

	b.snapshot = b.session.Snapshot()
	return nil
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if len(b.videos) == 0 {
				return tea.Quit
			}
			b.previousState()
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		}
	}

	return nil
}
