package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/filesystem"
	"github.com/ytune-cli/ytune/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given suggestions are enabled", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)

		So(Remember("daft punk", 1), ShouldBeNil)
		So(Remember("  Daft   PUNK around", 5), ShouldBeNil)

		Convey("Matches are ordered by rank", func() {
			s := SuggestMany("daft")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "daft punk around")
			So(Suggest("daft").MustGet(), ShouldEqual, "daft punk around")
		})

		Convey("Remembering again re-ranks", func() {
			So(Remember("daft punk", 10), ShouldBeNil)
			So(SuggestMany("daft")[0], ShouldEqual, "daft punk")
		})

		Convey("The exact query is not suggested to itself", func() {
			So(SuggestMany("daft punk around"), ShouldNotContain, "daft punk around")
		})

		Convey("Blank input is ignored", func() {
			So(Remember("   ", 1), ShouldBeNil)
			So(Suggest("  ").IsAbsent(), ShouldBeTrue)
		})

		Convey("Disabled suggestions return nothing", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(SuggestMany("daft"), ShouldBeEmpty)
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("normalize folds case and whitespace", t, func() {
		So(normalize("  Lo-Fi   Beats "), ShouldEqual, "lo-fi beats")
	})
}
