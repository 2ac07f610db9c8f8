package where

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytune-cli/ytune/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config() honours the override", func() {
			t.Setenv(EnvConfigPath, "/custom/ytune")
			So(Config(), ShouldEqual, "/custom/ytune")
			So(lo.Must(filesystem.API().IsDir("/custom/ytune")), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs() lives under Config()", func() {
			t.Setenv(EnvConfigPath, "/custom/ytune")
			So(Logs(), ShouldEqual, filepath.Join("/custom/ytune", "logs"))
		})

		Convey("Queries() is a file in Cache()", func() {
			So(filepath.Dir(Queries()), ShouldEqual, Cache())
		})

		Convey("History() survives cache sweeps", func() {
			So(filepath.Dir(History()), ShouldEqual, Config())
		})
	})
}
