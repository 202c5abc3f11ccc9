package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/yogaland/yogaland/filesystem"
	"github.com/yogaland/yogaland/key"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given a search history", t, func() {
		So(Remember("yoga flow", 1), ShouldBeNil)
		So(Remember("yoga basics", 10), ShouldBeNil)

		Convey("Suggestions are ordered by rank", func() {
			s := SuggestMany("yoga")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "yoga basics")
			So(Suggest("yoga").MustGet(), ShouldEqual, "yoga basics")
		})

		Convey("Remembering again raises the rank", func() {
			So(Remember("  YOGA FLOW ", 20), ShouldBeNil)
			So(SuggestMany("yoga")[0], ShouldEqual, "yoga flow")
		})

		Convey("The exact query is not suggested back", func() {
			So(SuggestMany("yoga basics"), ShouldNotContain, "yoga basics")
		})

		Convey("Forgotten queries disappear", func() {
			So(Forget("yoga flow"), ShouldBeNil)
			So(SuggestMany("yoga"), ShouldNotContain, "yoga flow")
		})

		Convey("Blank queries are ignored", func() {
			So(Remember("   ", 1), ShouldBeNil)
			So(SuggestMany(" "), ShouldBeEmpty)
		})

		Convey("Suggestions can be turned off", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)
			So(SuggestMany("yoga"), ShouldBeEmpty)
		})

		Reset(func() {
			_ = Forget("yoga flow")
			_ = Forget("yoga basics")
		})
	})
}
