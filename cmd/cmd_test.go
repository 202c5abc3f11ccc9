package cmd

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/key"
	"github.com/yogaland/yogaland/playback"
)

func TestValidateValue(t *testing.T) {
	Convey("Known keys are validated", t, func() {
		So(validateValue(key.CatalogSource, "remote"), ShouldBeNil)
		So(validateValue(key.CatalogSource, "ftp"), ShouldNotBeNil)

		So(validateValue(key.AdsMidrollPolicy, "latest"), ShouldBeNil)
		So(validateValue(key.AdsMidrollPolicy, "never"), ShouldNotBeNil)

		So(validateValue(key.AdsSlots, []string{"preroll", "mid-roll"}), ShouldBeNil)
		So(validateValue(key.AdsSlots, []string{"banner"}), ShouldNotBeNil)
		So(validateValue(key.AdsSlots, []string{"sideroll"}), ShouldNotBeNil)

		So(validateValue(key.CatalogPageSize, 0), ShouldNotBeNil)
		So(validateValue(key.CatalogCacheTTL, 0), ShouldBeNil)
	})

	Convey("Other keys pass through", t, func() {
		So(validateValue(key.LogsLevel, "debug"), ShouldBeNil)
	})
}

func TestStatusLine(t *testing.T) {
	Convey("Given playback snapshots", t, func() {
		Convey("A mid-roll names the break and the skip countdown", func() {
			line := statusLine(playback.Snapshot{
				Mode:     playback.PlayingAd,
				Slot:     catalog.MidRoll,
				Ad:       &catalog.Advertisement{Title: "Mats"},
				Duration: 20,
				Position: 2,
				SkipIn:   3,
			})
			So(line, ShouldContainSubstring, "Commercial Break: Mats")
			So(line, ShouldContainSubstring, "18s left")
			So(line, ShouldContainSubstring, "skip in 3s")
		})

		Convey("Main content shows the clock", func() {
			line := statusLine(playback.Snapshot{Mode: playback.PlayingMain, Position: 61, Duration: 600})
			So(line, ShouldContainSubstring, "1:01 / 10:00")
		})

		Convey("The host only redraws on change", func() {
			var buf bytes.Buffer
			host := newConsoleHost(&buf)
			s := playback.Snapshot{Mode: playback.PlayingMain, Position: 1, Duration: 10}

			host.Changed(s)
			n := buf.Len()
			host.Changed(s)
			So(buf.Len(), ShouldEqual, n)

			s.Position = 2
			host.Changed(s)
			So(buf.Len(), ShouldBeGreaterThan, n)
		})
	})
}

type scriptedSession struct {
	done    chan struct{}
	retries int
	backs   int
}

func (s *scriptedSession) Done() <-chan struct{} { return s.done }
func (s *scriptedSession) Retry()                { s.retries++ }
func (s *scriptedSession) Back()                 { s.backs++ }

func TestSuperviseSession(t *testing.T) {
	Convey("Given a session whose video fails to load", t, func() {
		var buf bytes.Buffer
		host := newConsoleHost(&buf)
		session := &scriptedSession{done: make(chan struct{})}

		host.Changed(playback.Snapshot{Mode: playback.Loading})
		host.Changed(playback.Snapshot{Mode: playback.Error, ErrorMessage: "Unable to play"})
		host.Changed(playback.Snapshot{Mode: playback.Error, ErrorMessage: "Unable to play"})

		Convey("Declining the retry leaves the session instead of waiting forever", func() {
			var asked []string
			superviseSession(session, host.failures, func(message string) bool {
				asked = append(asked, message)
				return false
			})

			So(asked, ShouldResemble, []string{"Unable to play"})
			So(session.backs, ShouldEqual, 1)
			So(session.retries, ShouldEqual, 0)
		})

		Convey("Accepting retries and keeps waiting for the session to end", func() {
			superviseSession(session, host.failures, func(string) bool {
				close(session.done)
				return true
			})

			So(session.retries, ShouldEqual, 1)
			So(session.backs, ShouldEqual, 0)
		})
	})

	Convey("A session that ends on its own is not touched", t, func() {
		session := &scriptedSession{done: make(chan struct{})}
		close(session.done)

		superviseSession(session, make(chan string), func(string) bool { return true })
		So(session.retries, ShouldEqual, 0)
		So(session.backs, ShouldEqual, 0)
	})
}
