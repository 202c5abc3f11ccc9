package playback

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/yogaland/yogaland/ads"
	"github.com/yogaland/yogaland/catalog"
)

var errBroken = errors.New("broken media")

func TestShortVideoSession(t *testing.T) {
	Convey("Given a 90 second video with pre-roll and post-roll ads", t, func() {
		pre := newAd("pre", catalog.PreRoll, 15, 5)
		post := newAd("post", catalog.PostRoll, 8, 4)
		video := newVideo(90)
		h := newHarness(video, []*catalog.Advertisement{pre, post}, &fixedScheduler{}, DefaultOptions())

		h.machine.Start()

		Convey("The watch is recorded before the pre-roll loads", func() {
			So(h.history.Watches(video.ID), ShouldEqual, 1)
			So(h.machine.Snapshot().Mode, ShouldEqual, Loading)
			So(h.machine.Snapshot().Slot, ShouldEqual, catalog.PreRoll)
			So(h.lastLoad().locator, ShouldEqual, pre.Source)
		})

		Convey("When the pre-roll loads", func() {
			h.completeLoad(nil)
			s := h.machine.Snapshot()

			Convey("It plays from zero with skipping disabled", func() {
				So(s.Mode, ShouldEqual, PlayingAd)
				So(s.CanSkip, ShouldBeFalse)
				So(s.SkipIn, ShouldEqual, 5)
				So(s.Position, ShouldEqual, 0)
				So(s.Duration, ShouldEqual, 15)
			})

			Convey("Toggling pause has no effect", func() {
				pauses := h.engine.pauseCount()
				h.machine.TogglePause()
				So(h.machine.Snapshot().Paused, ShouldBeFalse)
				So(h.engine.pauseCount(), ShouldEqual, pauses)
			})

			Convey("Skip is ignored before skipAfter and honored exactly at it", func() {
				h.tick(4)
				h.machine.Skip()
				So(h.machine.Snapshot().Mode, ShouldEqual, PlayingAd)
				So(h.machine.Snapshot().CanSkip, ShouldBeFalse)

				h.tick(1)
				So(h.machine.Snapshot().CanSkip, ShouldBeTrue)
				h.machine.Skip()
				So(h.machine.Snapshot().Mode, ShouldEqual, Loading)
				So(h.lastLoad().locator, ShouldEqual, video.Source)
			})

			Convey("The pre-roll advances on its own at its duration", func() {
				h.tick(14)
				So(h.machine.Snapshot().Mode, ShouldEqual, PlayingAd)
				h.tick(1)
				So(h.machine.Snapshot().Mode, ShouldEqual, Loading)
				So(h.lastLoad().locator, ShouldEqual, video.Source)
			})

			Convey("When the ad is skipped and the video plays to the end", func() {
				h.tick(5)
				h.machine.Skip()
				h.completeLoad(nil)

				So(h.machine.Snapshot().Mode, ShouldEqual, PlayingMain)
				So(h.engine.seeks, ShouldResemble, []int{0})
				So(h.machine.Snapshot().Markers, ShouldBeEmpty)

				h.engine.setPosition(87)
				h.tick(1)
				So(h.machine.Snapshot().Mode, ShouldEqual, PlayingMain)

				h.engine.setPosition(88)
				h.tick(1)

				Convey("Then the post-roll plays and the session completes", func() {
					So(h.machine.Snapshot().Slot, ShouldEqual, catalog.PostRoll)
					So(h.lastLoad().locator, ShouldEqual, post.Source)

					h.completeLoad(nil)
					So(h.machine.Snapshot().Mode, ShouldEqual, PlayingAd)

					h.tick(8)
					So(h.host.endings(), ShouldResemble, []EndReason{Completed})
					So(h.machine.Closed(), ShouldBeTrue)
				})
			})
		})
	})

	Convey("Given no ad inventory", t, func() {
		video := newVideo(90)
		h := newHarness(video, nil, &fixedScheduler{}, DefaultOptions())
		h.machine.Start()

		Convey("The video loads immediately and ending completes the session", func() {
			So(h.lastLoad().locator, ShouldEqual, video.Source)
			h.completeLoad(nil)

			h.engine.setPosition(89)
			h.tick(1)
			So(h.host.endings(), ShouldResemble, []EndReason{Completed})
		})
	})
}

func TestMediaShorterThanListed(t *testing.T) {
	Convey("Given a video listed at 600 seconds whose media stops at 596", t, func() {
		post := newAd("post", catalog.PostRoll, 8, 4)
		video := newVideo(600)
		h := newHarness(video, []*catalog.Advertisement{post}, &fixedScheduler{}, DefaultOptions())
		h.machine.Start()
		h.completeLoad(nil)
		So(h.machine.Snapshot().Mode, ShouldEqual, PlayingMain)

		h.engine.setPosition(596)

		Convey("A stalled playhead alone does not end the video", func() {
			h.tick(60)
			So(h.machine.Snapshot().Mode, ShouldEqual, PlayingMain)
			So(h.machine.Snapshot().Position, ShouldEqual, 596)
		})

		Convey("The engine reaching the end of the file plays the post-roll", func() {
			h.tick(3)
			h.engine.reachEnd()
			h.tick(1)

			So(h.machine.Snapshot().Mode, ShouldEqual, Loading)
			So(h.machine.Snapshot().Slot, ShouldEqual, catalog.PostRoll)
			So(h.lastLoad().locator, ShouldEqual, post.Source)
		})
	})

	Convey("Given no post-roll and media that ends early", t, func() {
		video := newVideo(480)
		h := newHarness(video, nil, &fixedScheduler{}, DefaultOptions())
		h.machine.Start()
		h.completeLoad(nil)

		h.engine.setPosition(15)
		h.engine.reachEnd()
		h.tick(1)

		So(h.host.endings(), ShouldResemble, []EndReason{Completed})
	})
}

func TestLongVideoMidRoll(t *testing.T) {
	Convey("Given a 600 second video with a mid-roll scheduled at 300", t, func() {
		mid := newAd("mid", catalog.MidRoll, 20, 5)
		video := newVideo(600)
		scheduler := &fixedScheduler{positions: []int{300}, ad: mid}
		options := DefaultOptions()
		options.Slots = []catalog.SlotType{catalog.MidRoll}

		h := newHarness(video, []*catalog.Advertisement{mid}, scheduler, options)
		h.machine.Start()
		h.completeLoad(nil)

		So(h.machine.Snapshot().Mode, ShouldEqual, PlayingMain)
		So(h.engine.markers, ShouldResemble, []int{300})

		Convey("Nothing triggers before the break", func() {
			h.engine.setPosition(299)
			h.tick(1)
			So(h.machine.Snapshot().Mode, ShouldEqual, PlayingMain)
		})

		Convey("When the playhead reaches 300", func() {
			h.engine.setPosition(300)
			pauses := h.engine.pauseCount()
			h.tick(1)

			s := h.machine.Snapshot()
			So(s.Mode, ShouldEqual, Loading)
			So(s.Slot, ShouldEqual, catalog.MidRoll)
			So(s.ResumeAt, ShouldEqual, 300)
			So(h.engine.pauseCount(), ShouldEqual, pauses+1)
			So(h.lastLoad().locator, ShouldEqual, mid.Source)

			Convey("Then after the ad the video resumes at 300, not 0", func() {
				h.completeLoad(nil)
				h.tick(20)
				So(h.lastLoad().locator, ShouldEqual, video.Source)

				h.completeLoad(nil)
				s := h.machine.Snapshot()
				So(s.Mode, ShouldEqual, PlayingMain)
				So(s.Position, ShouldEqual, 300)
				So(h.engine.lastSeek(), ShouldEqual, 300)

				h.tick(1)
				So(h.machine.Snapshot().Mode, ShouldEqual, PlayingMain)
			})

			Convey("Then a failing mid-roll still resumes at 300", func() {
				h.completeLoad(errBroken)
				So(h.lastLoad().locator, ShouldEqual, video.Source)

				h.completeLoad(nil)
				So(h.engine.lastSeek(), ShouldEqual, 300)
				So(h.machine.Snapshot().Mode, ShouldEqual, PlayingMain)
			})

			Convey("Then a result for the superseded ad load is dropped", func() {
				stale := h.lastLoad().token
				h.completeLoad(errBroken)
				So(h.machine.Snapshot().Mode, ShouldEqual, Loading)

				h.machine.LoadDone(stale, nil)
				So(h.machine.Snapshot().Mode, ShouldEqual, Loading)
				So(h.machine.Snapshot().Slot, ShouldEqual, catalog.SlotType(""))
			})
		})

		Convey("A tick that misses the window drops the break", func() {
			h.engine.setPosition(303)
			h.tick(1)
			So(h.machine.Snapshot().Mode, ShouldEqual, PlayingMain)
		})
	})

	Convey("Given the latest policy and breaks at 100 and 300", t, func() {
		mid := newAd("mid", catalog.MidRoll, 20, 5)
		options := DefaultOptions()
		options.Slots = []catalog.SlotType{catalog.MidRoll}
		options.Policy = ads.PolicyLatest

		h := newHarness(newVideo(600), []*catalog.Advertisement{mid}, &fixedScheduler{positions: []int{100, 300}, ad: mid}, options)
		h.machine.Start()
		h.completeLoad(nil)

		Convey("Jumping past both fires one break that resumes where the viewer was", func() {
			h.engine.setPosition(400)
			h.tick(1)
			So(h.machine.Snapshot().ResumeAt, ShouldEqual, 400)

			h.completeLoad(nil)
			h.tick(20)
			h.completeLoad(nil)
			h.tick(1)
			So(h.machine.Snapshot().Mode, ShouldEqual, PlayingMain)
		})
	})

	Convey("Given mid-rolls are disabled", t, func() {
		scheduler := &fixedScheduler{}
		options := DefaultOptions()
		options.Slots = nil

		h := newHarness(newVideo(600), nil, scheduler, options)
		h.machine.Start()

		Convey("No schedule is generated", func() {
			So(scheduler.calls, ShouldEqual, 0)
		})
	})
}

func TestLoadFailures(t *testing.T) {
	Convey("Given a session with every slot enabled", t, func() {
		pre := newAd("pre", catalog.PreRoll, 10, 3)
		post := newAd("post", catalog.PostRoll, 8, 4)
		video := newVideo(90)
		h := newHarness(video, []*catalog.Advertisement{pre, post}, &fixedScheduler{}, DefaultOptions())
		h.machine.Start()

		Convey("A failing pre-roll falls through to the video", func() {
			h.completeLoad(errBroken)
			So(h.machine.Snapshot().Mode, ShouldEqual, Loading)
			So(h.lastLoad().locator, ShouldEqual, video.Source)
		})

		Convey("A failing post-roll completes the session", func() {
			h.completeLoad(errBroken)
			h.completeLoad(nil)
			h.engine.setPosition(90)
			h.tick(1)
			h.completeLoad(errBroken)

			So(h.host.endings(), ShouldResemble, []EndReason{Completed})
		})

		Convey("A failing video enters the error state", func() {
			h.completeLoad(errBroken)
			h.completeLoad(errBroken)

			s := h.machine.Snapshot()
			So(s.Mode, ShouldEqual, Error)
			So(s.ErrorMessage, ShouldContainSubstring, video.Title)

			Convey("Ticks and commands other than retry and back do nothing", func() {
				changes := h.host.changes()
				h.tick(3)
				h.machine.TogglePause()
				h.machine.Skip()
				h.machine.SeekForward()
				So(h.host.changes(), ShouldEqual, changes)
			})

			Convey("Retry loads the video again", func() {
				loads := len(h.loads)
				h.machine.Retry()
				So(h.machine.Snapshot().Mode, ShouldEqual, Loading)
				So(h.machine.Snapshot().ErrorMessage, ShouldBeEmpty)
				So(len(h.loads), ShouldEqual, loads+1)
				So(h.lastLoad().locator, ShouldEqual, video.Source)

				h.completeLoad(nil)
				So(h.machine.Snapshot().Mode, ShouldEqual, PlayingMain)
				So(h.engine.lastSeek(), ShouldEqual, 0)
			})
		})
	})
}

func TestCommands(t *testing.T) {
	Convey("Given a video playing at 5 seconds", t, func() {
		options := DefaultOptions()
		options.Slots = nil
		h := newHarness(newVideo(600), nil, &fixedScheduler{}, options)
		h.machine.Start()
		h.completeLoad(nil)
		h.engine.setPosition(5)
		h.tick(1)

		Convey("Seeking back is clamped at zero", func() {
			h.machine.SeekBackward()
			So(h.engine.lastSeek(), ShouldEqual, 0)
			So(h.machine.Snapshot().Position, ShouldEqual, 0)
		})

		Convey("Seeking forward moves by the step", func() {
			h.machine.SeekForward()
			So(h.engine.lastSeek(), ShouldEqual, 15)
		})

		Convey("Seeking is clamped at the duration", func() {
			h.machine.Seek(10_000)
			So(h.engine.lastSeek(), ShouldEqual, 600)
		})

		Convey("Toggle pause stops polling until resumed", func() {
			h.machine.TogglePause()
			So(h.machine.Snapshot().Paused, ShouldBeTrue)

			h.engine.setPosition(50)
			h.tick(1)
			So(h.machine.Snapshot().Position, ShouldEqual, 5)

			h.machine.TogglePause()
			h.tick(1)
			So(h.machine.Snapshot().Paused, ShouldBeFalse)
			So(h.machine.Snapshot().Position, ShouldEqual, 50)
		})

		Convey("Confirm toggles the controls, which hide after the timeout", func() {
			h.machine.Confirm()
			So(h.machine.Snapshot().ControlsVisible, ShouldBeTrue)

			h.tick(options.ControlsTimeout - 1)
			So(h.machine.Snapshot().ControlsVisible, ShouldBeTrue)
			h.tick(1)
			So(h.machine.Snapshot().ControlsVisible, ShouldBeFalse)

			h.machine.Confirm()
			h.machine.Confirm()
			So(h.machine.Snapshot().ControlsVisible, ShouldBeFalse)
		})
	})

	Convey("Given an ad that is skippable from the start", t, func() {
		pre := newAd("pre", catalog.PreRoll, 10, 0)
		options := DefaultOptions()
		options.Slots = []catalog.SlotType{catalog.PreRoll}
		h := newHarness(newVideo(90), []*catalog.Advertisement{pre}, &fixedScheduler{}, options)
		h.machine.Start()
		h.completeLoad(nil)

		Convey("Confirm skips it immediately", func() {
			So(h.machine.Snapshot().CanSkip, ShouldBeTrue)
			h.machine.Confirm()
			So(h.machine.Snapshot().Mode, ShouldEqual, Loading)
			So(h.machine.Snapshot().Slot, ShouldEqual, catalog.SlotType(""))
		})
	})
}

func TestBack(t *testing.T) {
	pre := newAd("pre", catalog.PreRoll, 10, 3)

	states := map[string]func(h *harness){
		"loading": func(h *harness) {},
		"playing an ad": func(h *harness) {
			h.completeLoad(nil)
		},
		"playing the video": func(h *harness) {
			h.completeLoad(nil)
			h.tick(10)
			h.completeLoad(nil)
		},
		"showing an error": func(h *harness) {
			h.completeLoad(errBroken)
			h.completeLoad(errBroken)
		},
	}

	for name, reach := range states {
		Convey("Given a session "+name, t, func() {
			h := newHarness(newVideo(600), []*catalog.Advertisement{pre}, &fixedScheduler{}, DefaultOptions())
			h.machine.Start()
			reach(h)

			pauses := h.engine.pauseCount()
			pending := h.lastLoad().token

			h.machine.Back()

			Convey("Then the host is notified exactly once and the engine paused", func() {
				So(h.host.endings(), ShouldResemble, []EndReason{Back})
				So(h.engine.pauseCount(), ShouldEqual, pauses+1)
				So(h.host.last().Ended, ShouldBeTrue)
			})

			Convey("Then nothing afterwards changes the session", func() {
				changes := h.host.changes()

				h.tick(30)
				h.machine.LoadDone(pending, nil)
				h.machine.LoadDone(pending+1, nil)
				h.machine.Skip()
				h.machine.Confirm()
				h.machine.Retry()
				h.machine.Back()

				So(h.host.changes(), ShouldEqual, changes)
				So(h.host.endings(), ShouldResemble, []EndReason{Back})
			})
		})
	}
}
