package history

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/constant"
)

func TestSelection(t *testing.T) {
	Convey("Given an empty selection history", t, func() {
		s := NewSelection()

		Convey("Unknown keys have zero watches and no last shown ad", func() {
			So(s.Watches("1"), ShouldEqual, 0)
			_, ok := s.LastShown(catalog.MidRoll)
			So(ok, ShouldBeFalse)
		})

		Convey("When watches are recorded", func() {
			So(s.RecordWatch("1"), ShouldEqual, 1)
			So(s.RecordWatch("1"), ShouldEqual, 2)
			s.RecordWatch("2")

			Convey("Then they are counted per video", func() {
				So(s.Watches("1"), ShouldEqual, 2)
				So(s.WatchesFor(&catalog.Video{ID: "2"}), ShouldEqual, 1)
			})

			Convey("Then a missing video resolves to the global key", func() {
				s.RecordWatch(constant.GlobalWatchKey)
				So(s.WatchesFor(nil), ShouldEqual, 1)
			})
		})

		Convey("When last shown ads are set per slot", func() {
			s.SetLastShown(catalog.PreRoll, "ad1")
			s.SetLastShown(catalog.MidRoll, "ad2")
			s.SetLastShown(catalog.MidRoll, "ad3")

			Convey("Then the latest id per slot is kept", func() {
				id, ok := s.LastShown(catalog.MidRoll)
				So(ok, ShouldBeTrue)
				So(id, ShouldEqual, "ad3")

				id, _ = s.LastShown(catalog.PreRoll)
				So(id, ShouldEqual, "ad1")
			})

			Convey("Then Reset clears everything", func() {
				s.RecordWatch("1")
				s.Reset()
				So(s.Watches("1"), ShouldEqual, 0)
				_, ok := s.LastShown(catalog.PreRoll)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("Concurrent recording is safe", func() {
			var wg sync.WaitGroup
			for range 50 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					s.RecordWatch("1")
				}()
			}
			wg.Wait()
			So(s.Watches("1"), ShouldEqual, 50)
		})
	})
}
