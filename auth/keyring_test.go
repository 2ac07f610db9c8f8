package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/key"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func TestAPIKey(t *testing.T) {
	Convey("Given an in-memory keyring", t, func() {
		viper.Set(key.YouTubeAPIKey, "")
		So(DeleteAPIKey(), ShouldBeNil)

		Convey("Nothing configured resolves to none", func() {
			k, src := APIKey()
			So(k, ShouldBeEmpty)
			So(src, ShouldEqual, SourceNone)
		})

		Convey("A stored key is found in the keyring", func() {
			So(SetAPIKey("from-keyring"), ShouldBeNil)

			k, src := APIKey()
			So(k, ShouldEqual, "from-keyring")
			So(src, ShouldEqual, SourceKeyring)

			Convey("The config value takes precedence", func() {
				viper.Set(key.YouTubeAPIKey, "from-config")
				k, src := APIKey()
				So(k, ShouldEqual, "from-config")
				So(src, ShouldEqual, SourceConfig)
			})
		})

		Convey("Deleting twice is fine", func() {
			So(DeleteAPIKey(), ShouldBeNil)
			So(DeleteAPIKey(), ShouldBeNil)
		})
	})
}
