package config

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

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.IsSet(name), ShouldBeTrue)
			}
			So(viper.GetString(key.PlayerBackend), ShouldEqual, "ipc")
			So(viper.GetInt(key.PlayerReadyTimeout), ShouldEqual, 8)
		})

		Convey("Should read the api key from the unprefixed alias", func() {
			t.Setenv("YTUNE_YOUTUBE_API_KEY", "")
			t.Setenv(EnvAPIKeyAlias, "alias-key")
			_ = Setup()
			So(viper.GetString(key.YouTubeAPIKey), ShouldEqual, "alias-key")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("player.ready_timeout"), ShouldEqual, "player_ready_timeout")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the api key field", t, func() {
		field := Default[key.YouTubeAPIKey]

		Convey("Its env name should carry the app prefix", func() {
			So(field.Env(), ShouldEqual, "YTUNE_YOUTUBE_API_KEY")
		})

		Convey("Its current value should be masked", func() {
			viper.Set(key.YouTubeAPIKey, "AIzaSyExample")
			So(field.Current(), ShouldEqual, "AIza*********")
		})
	})

	Convey("Mask", t, func() {
		So(Mask(""), ShouldEqual, "")
		So(Mask("abc"), ShouldEqual, "***")
	})
}
