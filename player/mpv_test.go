package player

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("Given media locators", t, func() {
		Convey("Remote and local media pass", func() {
			got, err := sanitizeMediaTarget(" https://cdn.example/video.mp4 ")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "https://cdn.example/video.mp4")

			got, err = sanitizeMediaTarget("videos/../videos/ad.mp4")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "videos/ad.mp4")
		})

		Convey("Option-like and unsupported locators are rejected", func() {
			for _, bad := range []string{"", "--script=evil.lua", "rtmp://host/live", "a\nb"} {
				_, err := sanitizeMediaTarget(bad)
				So(err, ShouldNotBeNil)
			}
		})
	})

	Convey("Titles are flattened to a single line", t, func() {
		So(sanitizeTitle(" Nature\tDocumentary\n"), ShouldEqual, "Nature Documentary")
	})
}

func TestEventListener(t *testing.T) {
	Convey("Given an event listener", t, func() {
		var names []string
		el := NewEventListener("", func(name string, _ interface{}) {
			names = append(names, name)
		})

		Convey("Property changes and events are forwarded by name", func() {
			el.processEvent(`{"event":"property-change","id":1,"name":"pause","data":true}`)
			el.processEvent(`{"event":"file-loaded"}`)
			el.processEvent(`{"request_id":3,"error":"success"}`)
			el.processEvent(`not json`)

			So(names, ShouldResemble, []string{"pause", "file-loaded"})
		})
	})
}

func TestMPVLoadEvents(t *testing.T) {
	Convey("Given an mpv engine waiting for a load", t, func() {
		m := NewMPV()
		result := make(chan error, 1)
		m.pending = result

		Convey("file-loaded completes the load", func() {
			m.onEvent("file-loaded", map[string]interface{}{"event": "file-loaded"})
			So(<-result, ShouldBeNil)
		})

		Convey("an errored end-file fails the load", func() {
			m.onEvent("end-file", map[string]interface{}{"event": "end-file", "reason": "error", "file_error": "loading failed"})
			err := <-result
			So(errors.Is(err, ErrLoad), ShouldBeTrue)
		})

		Convey("end-file of a replaced file is ignored", func() {
			m.onEvent("end-file", map[string]interface{}{"event": "end-file", "reason": "stop"})
			So(len(result), ShouldEqual, 0)
		})
	})
}

func TestMPVEndOfFile(t *testing.T) {
	Convey("Given an mpv engine", t, func() {
		m := NewMPV()
		So(m.EOF(), ShouldBeFalse)

		Convey("eof-reached changes are mirrored", func() {
			m.onEvent(propertyEOF, true)
			So(m.EOF(), ShouldBeTrue)

			m.onEvent(propertyEOF, false)
			So(m.EOF(), ShouldBeFalse)
		})

		Convey("An unavailable property counts as not at the end", func() {
			m.onEvent(propertyEOF, true)
			m.onEvent(propertyEOF, nil)
			So(m.EOF(), ShouldBeFalse)
		})

		Convey("The listener forwards the observed property by name", func() {
			var got []interface{}
			el := NewEventListener("", func(name string, data interface{}) {
				if name == propertyEOF {
					got = append(got, data)
				}
			}, propertyEOF)

			el.processEvent(`{"event":"property-change","id":1,"name":"eof-reached","data":true}`)
			So(got, ShouldResemble, []interface{}{true})
			So(el.properties, ShouldResemble, []string{propertyEOF})
		})

		Convey("mpv satisfies the end-of-file contract", func() {
			var engine Engine = m
			_, ok := engine.(Ender)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestSimulated(t *testing.T) {
	ctx := context.Background()

	Convey("Given a simulated engine with a controllable clock", t, func() {
		now := time.Unix(0, 0)
		s := NewSimulated()
		s.now = func() time.Time { return now }

		Convey("Position is unavailable before a load", func() {
			_, err := s.Position()
			So(err, ShouldNotBeNil)
		})

		Convey("When media is loaded and played", func() {
			So(s.Load(ctx, "https://cdn.example/a.mp4", "a"), ShouldBeNil)
			So(s.Play(), ShouldBeNil)
			now = now.Add(5 * time.Second)

			pos, err := s.Position()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 5)

			Convey("Pausing freezes the playhead", func() {
				So(s.Pause(), ShouldBeNil)
				now = now.Add(time.Minute)
				pos, _ := s.Position()
				So(pos, ShouldEqual, 5)
			})

			Convey("Seeking moves it", func() {
				So(s.Seek(300), ShouldBeNil)
				now = now.Add(2 * time.Second)
				pos, _ := s.Position()
				So(pos, ShouldEqual, 302)
			})
		})

		Convey("fail: locators fail to load", func() {
			err := s.Load(ctx, "fail:404", "broken")
			So(errors.Is(err, ErrLoad), ShouldBeTrue)
		})
	})

	Convey("New resolves engines by name", t, func() {
		e, err := New("simulated")
		So(err, ShouldBeNil)
		So(e, ShouldHaveSameTypeAs, &Simulated{})

		_, err = New("vlc")
		So(err, ShouldNotBeNil)
	})
}
