package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytune-cli/ytune/constant"
)

func TestCommand(t *testing.T) {
	Convey("Given a watch URL", t, func() {
		url := constant.YouTubeWatchURL + "abc"

		Convey("Linux uses xdg-open", func() {
			cmd, err := command(constant.Linux, url)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", url})
		})

		Convey("Darwin uses open", func() {
			cmd, err := command(constant.Darwin, url)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"open", url})
		})

		Convey("Unknown systems are rejected", func() {
			_, err := command("plan9", url)
			So(err, ShouldNotBeNil)
		})
	})
}
