package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/log"
	"github.com/yogaland/yogaland/playback"
)

type (
	videosMsg []*catalog.Video

	sessionMsg struct {
		generation int
		session    *playback.Session
	}

	snapshotMsg struct {
		generation int
		snapshot   playback.Snapshot
	}

	endedMsg struct {
		generation int
		reason     playback.EndReason
	}
)

// channelHost hands session notifications to the event loop. It never blocks:
// the session calls it with its lock held.
type channelHost struct {
	generation int
	snapshots  chan snapshotMsg
	ended      chan endedMsg
}

func (h *channelHost) Changed(snapshot playback.Snapshot) {
	msg := snapshotMsg{generation: h.generation, snapshot: snapshot}

	select {
	case h.snapshots <- msg:
		return
	default:
	}

	// keep only the latest
	select {
	case <-h.snapshots:
	default:
	}

	select {
	case h.snapshots <- msg:
	default:
	}
}

func (h *channelHost) Ended(reason playback.EndReason) {
	select {
	case h.ended <- endedMsg{generation: h.generation, reason: reason}:
	default:
		log.Warnf("dropped end of session %d", h.generation)
	}
}

func (b *statefulBubble) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		return <-b.snapshotChannel
	}
}

func (b *statefulBubble) waitForEnd() tea.Cmd {
	return func() tea.Msg {
		return <-b.endedChannel
	}
}

func (b *statefulBubble) loadVideos() tea.Cmd {
	return func() tea.Msg {
		videos, err := b.library.Catalog.Videos(b.ctx)
		if err != nil {
			log.Error(err)
			return fmt.Errorf("load catalog: %w", err)
		}

		log.Infof("loaded %d videos", len(videos))
		return videosMsg(videos)
	}
}

// openSession prepares a session for video without starting it.
func (b *statefulBubble) openSession(video *catalog.Video) tea.Cmd {
	b.generation++
	host := &channelHost{
		generation: b.generation,
		snapshots:  b.snapshotChannel,
		ended:      b.endedChannel,
	}

	return func() tea.Msg {
		session, err := b.library.NewSession(b.ctx, video, host)
		if err != nil {
			log.Error(err)
			return err
		}

		return sessionMsg{generation: host.generation, session: session}
	}
}

// closeSession leaves the current session, if any.
func (b *statefulBubble) closeSession() {
	if b.session == nil {
		return
	}

	b.session.Back()
	b.session = nil
}

// applyFilter refreshes the list from the category and search query.
func (b *statefulBubble) applyFilter() tea.Cmd {
	videos := b.videos

	if b.category >= 0 && b.category < len(b.categories) {
		videos = catalog.ByCategory(videos, b.categories[b.category])
	}

	if b.query != "" {
		videos = catalog.Search(videos, b.query)
	}

	items := lo.Map(newListItems(videos, catalog.Featured(b.videos)), func(item *listItem, _ int) list.Item {
		return item
	})

	b.setTitle()
	b.videosC.ResetSelected()
	return b.videosC.SetItems(items)
}

func (b *statefulBubble) nextCategory() tea.Cmd {
	if len(b.categories) == 0 {
		return nil
	}

	b.category++
	if b.category >= len(b.categories) {
		b.category = -1
	}

	return b.applyFilter()
}

func (b *statefulBubble) setTitle() {
	title := "All videos"
	if b.category >= 0 && b.category < len(b.categories) {
		title = b.categories[b.category]
	}

	if b.query != "" {
		title = fmt.Sprintf("%s - %q", title, b.query)
	}

	b.videosC.Title = title
}
