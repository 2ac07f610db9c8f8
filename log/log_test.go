package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/filesystem"
	"github.com/ytune-cli/ytune/key"
	"github.com/ytune-cli/ytune/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup is a no-op", func() {
			So(Setup(), ShouldBeNil)
			So(enabled, ShouldBeFalse)
		})

		Convey("Entries are still safe to use", func() {
			So(func() { WithField("query", "lofi").Info("search") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		t.Setenv(where.EnvConfigPath, "/logs-test")
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)

		Convey("Messages land in today's file", func() {
			Info("hello from the test")
			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			contents := lo.Must(filesystem.API().ReadFile(path))
			So(string(contents), ShouldContainSubstring, "hello from the test")
		})
	})
}
