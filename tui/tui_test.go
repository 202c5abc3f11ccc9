package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/filesystem"
	"github.com/yogaland/yogaland/history"
	"github.com/yogaland/yogaland/playback"
	"github.com/yogaland/yogaland/player"
)

func init() {
	filesystem.SetMemMapFs()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestBubble() (*statefulBubble, []*catalog.Video) {
	bundled, err := catalog.NewBundled()
	So(err, ShouldBeNil)

	videos, err := bundled.Videos(context.Background())
	So(err, ShouldBeNil)

	library := &playback.Library{
		Catalog:    bundled,
		History:    history.NewSelection(),
		Options:    playback.DefaultOptions(),
		EngineName: player.NameSimulated,
	}

	b := newBubble(context.Background(), library, &Options{})
	b.newState(loadingState)
	b.resize(100, 40)
	return b, videos
}

func TestHelpers(t *testing.T) {
	Convey("adBanner names every break", t, func() {
		So(adBanner(catalog.PreRoll), ShouldEqual, "Advertisement")
		So(adBanner(catalog.MidRoll), ShouldEqual, "Commercial Break")
		So(adBanner(catalog.PostRoll), ShouldEqual, "Thank you for watching")
	})

	Convey("markerLine places markers proportionally", t, func() {
		line := markerLine([]int{300, 600}, 1200, 12)
		So([]rune(line)[3], ShouldEqual, '▲')
		So([]rune(line)[6], ShouldEqual, '▲')
		So(markerLine(nil, 0, 10), ShouldBeEmpty)
		So(markerLine([]int{1200}, 1200, 10), ShouldEndWith, "▲")
	})

	Convey("ratio is clamped", t, func() {
		So(ratio(5, 10), ShouldEqual, 0.5)
		So(ratio(20, 10), ShouldEqual, 1)
		So(ratio(1, 0), ShouldEqual, 0)
	})

	Convey("skipHint counts down then offers the skip", t, func() {
		So(skipHint(playback.Snapshot{SkipIn: 3, Duration: 15, Position: 2}), ShouldContainSubstring, "Skip in 3s")
		So(skipHint(playback.Snapshot{CanSkip: true}), ShouldContainSubstring, "Press enter to skip")
		So(skipHint(playback.Snapshot{SkipIn: 8, Duration: 8}), ShouldBeEmpty)
	})

	Convey("listItem shows category and duration", t, func() {
		video := &catalog.Video{ID: "1", Title: "Sunrise", Category: "Lifestyle", Duration: 90}
		item := newListItems([]*catalog.Video{video}, []*catalog.Video{video})[0]
		So(item.featured, ShouldBeTrue)
		So(item.FilterValue(), ShouldEqual, "Sunrise")
		So(item.Description(), ShouldContainSubstring, "Lifestyle")
		So(item.Description(), ShouldContainSubstring, "1:30")
	})
}

func TestChannelHost(t *testing.T) {
	Convey("Given a host over single-slot channels", t, func() {
		host := &channelHost{
			generation: 7,
			snapshots:  make(chan snapshotMsg, 1),
			ended:      make(chan endedMsg, 1),
		}

		Convey("Only the latest snapshot is kept and sending never blocks", func() {
			host.Changed(playback.Snapshot{Position: 1})
			host.Changed(playback.Snapshot{Position: 2})
			host.Changed(playback.Snapshot{Position: 3})

			msg := <-host.snapshots
			So(msg.snapshot.Position, ShouldEqual, 3)
			So(msg.generation, ShouldEqual, 7)
		})

		Convey("Ended is delivered with the generation", func() {
			host.Ended(playback.Back)
			host.Ended(playback.Back)

			msg := <-host.ended
			So(msg.reason, ShouldEqual, playback.Back)
			So(msg.generation, ShouldEqual, 7)
		})
	})
}

func TestSessionChannels(t *testing.T) {
	Convey("Given a host wired to the bubble's channels", t, func() {
		b, _ := newTestBubble()
		host := &channelHost{
			generation: b.generation,
			snapshots:  b.snapshotChannel,
			ended:      b.endedChannel,
		}

		Convey("Snapshots reach the event loop as snapshot messages", func() {
			host.Changed(playback.Snapshot{Position: 4})

			msg, ok := b.waitForSnapshot()().(snapshotMsg)
			So(ok, ShouldBeTrue)
			So(msg.snapshot.Position, ShouldEqual, 4)
			So(msg.generation, ShouldEqual, b.generation)
		})

		Convey("The end of a session reaches the event loop as an end message", func() {
			host.Ended(playback.Completed)

			msg, ok := b.waitForEnd()().(endedMsg)
			So(ok, ShouldBeTrue)
			So(msg.reason, ShouldEqual, playback.Completed)
		})
	})
}

func TestBrowse(t *testing.T) {
	Convey("Given a loaded catalog", t, func() {
		b, videos := newTestBubble()
		b.Update(videosMsg(videos))

		Convey("The browse screen lists every video", func() {
			So(b.state, ShouldEqual, browseState)
			So(b.videosC.Items(), ShouldHaveLength, len(videos))
			So(b.categories, ShouldResemble, []string{"Documentary", "Lifestyle", "Entertainment"})
			So(b.View(), ShouldContainSubstring, "Featured")
		})

		Convey("Cycling categories filters the list and wraps around", func() {
			b.Update(runes("c"))
			So(b.videosC.Title, ShouldEqual, "Documentary")
			So(b.videosC.Items(), ShouldHaveLength, 2)

			b.Update(runes("c"))
			b.Update(runes("c"))
			b.Update(runes("c"))
			So(b.videosC.Title, ShouldEqual, "All videos")
			So(b.videosC.Items(), ShouldHaveLength, len(videos))
		})

		Convey("Searching narrows the list and esc clears it", func() {
			b.Update(runes("/"))
			So(b.state, ShouldEqual, searchState)

			for _, r := range "cooking" {
				b.Update(runes(string(r)))
			}
			b.Update(tea.KeyMsg{Type: tea.KeyEnter})

			So(b.state, ShouldEqual, browseState)
			So(b.query, ShouldEqual, "cooking")
			So(b.videosC.Items(), ShouldHaveLength, 2)

			b.Update(tea.KeyMsg{Type: tea.KeyEsc})
			So(b.query, ShouldBeEmpty)
			So(b.videosC.Items(), ShouldHaveLength, len(videos))
		})
	})

	Convey("Given a preselected category", t, func() {
		b, videos := newTestBubble()
		b.options.Category = "lifestyle"
		b.Update(videosMsg(videos))

		So(b.videosC.Title, ShouldEqual, "Lifestyle")
		So(b.videosC.Items(), ShouldHaveLength, 3)
	})
}

func TestPlayer(t *testing.T) {
	Convey("Given a video opened from the browse screen", t, func() {
		b, videos := newTestBubble()
		b.Update(videosMsg(videos))

		b.Update(tea.KeyMsg{Type: tea.KeyEnter})
		So(b.state, ShouldEqual, loadingState)

		video := b.selectedVideo().MustGet()
		b.Update(b.openSession(video)())

		So(b.state, ShouldEqual, playerState)
		So(b.session, ShouldNotBeNil)
		session := b.session

		Convey("Leaving the player returns to the browse screen", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyEsc})
			b.Update(<-b.endedChannel)
			session.Wait()

			So(b.state, ShouldEqual, browseState)
			So(b.session, ShouldBeNil)
			So(session.Reason(), ShouldEqual, playback.Back)
		})

		Convey("A stale session notification is ignored", func() {
			b.Update(endedMsg{generation: b.generation - 1, reason: playback.Completed})
			So(b.state, ShouldEqual, playerState)

			session.Back()
			session.Wait()
		})
	})

	Convey("Given ad and main snapshots", t, func() {
		b, videos := newTestBubble()
		b.setState(playerState)

		Convey("A mid-roll shows the commercial break banner", func() {
			b.snapshot = playback.Snapshot{
				Mode:     playback.PlayingAd,
				Video:    videos[0],
				Slot:     catalog.MidRoll,
				Ad:       &catalog.Advertisement{Title: "Stretch Mats", Duration: 20, SkipAfter: 5},
				Duration: 20,
				SkipIn:   5,
				ResumeAt: 300,
			}

			view := b.View()
			So(view, ShouldContainSubstring, "Commercial Break")
			So(view, ShouldContainSubstring, "Resuming at 5:00")
			So(view, ShouldContainSubstring, "Skip in 5s")
		})

		Convey("An error shows the message", func() {
			b.snapshot = playback.Snapshot{Mode: playback.Error, Video: videos[0], ErrorMessage: "Unable to play"}
			So(b.View(), ShouldContainSubstring, "Unable to play")
		})

		Convey("Main content shows the clock", func() {
			b.snapshot = playback.Snapshot{Mode: playback.PlayingMain, Video: videos[0], Position: 65, Duration: 600}
			So(strings.Contains(b.View(), "1:05 / 10:00"), ShouldBeTrue)
		})
	})
}
