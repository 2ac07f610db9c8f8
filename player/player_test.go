package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWatchURL(t *testing.T) {
	Convey("watchURL", t, func() {
		url, err := watchURL(" dQw4w9WgXcQ ")
		So(err, ShouldBeNil)
		So(url, ShouldEqual, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

		for _, bad := range []string{"", "--script=x", "a b", "a&list=1", "x\n"} {
			_, err = watchURL(bad)
			So(err, ShouldNotBeNil)
		}
	})
}

func TestNew(t *testing.T) {
	Convey("New selects the backend by kind", t, func() {
		b, err := New(KindIPC, "mpv")
		So(err, ShouldBeNil)
		So(b, ShouldHaveSameTypeAs, &MPV{})

		b, err = New(KindProcess, "mpv")
		So(err, ShouldBeNil)
		So(b, ShouldHaveSameTypeAs, &Process{})

		_, err = New("vlc", "mpv")
		So(err, ShouldNotBeNil)
	})

	Convey("Available fails for a missing executable", t, func() {
		So(Available("ytune-no-such-player"), ShouldNotBeNil)
	})
}
