package icon

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/key"
)

func TestGet(t *testing.T) {
	Convey("Given the registry", t, func() {
		Convey("Every icon renders for every variant", func() {
			for _, variant := range AvailableVariants() {
				viper.Set(key.IconsVariant, variant)
				for i := Play; i <= Progress; i++ {
					So(Get(i), ShouldNotBeEmpty)
				}
			}
		})

		Convey("Play and pause glyphs differ", func() {
			viper.Set(key.IconsVariant, plain)
			So(Get(Play), ShouldNotEqual, Get(Pause))
		})

		Convey("It returns empty for an unknown variant", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(Music), ShouldBeEmpty)
		})
	})
}
