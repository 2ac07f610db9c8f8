package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytune-cli/ytune/config"
	"github.com/ytune-cli/ytune/filesystem"
	"github.com/ytune-cli/ytune/key"
	"github.com/ytune-cli/ytune/where"
	"github.com/ytune-cli/ytune/youtube"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestParseValue(t *testing.T) {
	Convey("Values are parsed to the type of the default", t, func() {
		v, err := parseValue(config.Default[key.PlayerReadyTimeout], []string{"12"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 12)

		v, err = parseValue(config.Default[key.TUIShowURLs], []string{"true"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, true)

		v, err = parseValue(config.Default[key.PlayerBackend], []string{"process", "ignored"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "process")

		v, err = parseValue(config.Default[key.ServeAllowedOrigins], []string{"a", "b"})
		So(err, ShouldBeNil)
		So(v, ShouldResemble, []string{"a", "b"})

		Convey("Malformed values are rejected", func() {
			_, err := parseValue(config.Default[key.PlayerReadyTimeout], []string{"soon"})
			So(err, ShouldNotBeNil)

			_, err = parseValue(config.Default[key.LogsWrite], []string{"maybe"})
			So(err, ShouldNotBeNil)

			_, err = parseValue(config.Default[key.LogsWrite], nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("Unknown keys suggest the closest known one", t, func() {
		err := errUnknownKey("player.backnd")
		So(err.Error(), ShouldContainSubstring, key.PlayerBackend)
	})
}

func TestWriteResults(t *testing.T) {
	results := []*youtube.Result{
		{ID: "abc", Title: "Song", Channel: "Band"},
		{ID: "def", Title: "Other", Channel: "Solo"},
	}

	Convey("Given results", t, func() {
		var buf bytes.Buffer

		Convey("Plain output has one tab-separated line each", func() {
			So(writeResults(&buf, results, false), ShouldBeNil)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			So(lines, ShouldHaveLength, 2)
			So(lines[0], ShouldEqual, "abc\tSong\tBand\thttps://www.youtube.com/watch?v=abc")
		})

		Convey("JSON output is an array", func() {
			So(writeResults(&buf, results, true), ShouldBeNil)

			var decoded []youtube.Result
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded, ShouldHaveLength, 2)
			So(decoded[1].Channel, ShouldEqual, "Solo")
		})

		Convey("No results encode as an empty array", func() {
			So(writeResults(&buf, nil, true), ShouldBeNil)
			So(strings.TrimSpace(buf.String()), ShouldEqual, "[]")
		})
	})
}

func TestResultsSchema(t *testing.T) {
	Convey("The schema describes an array of results", t, func() {
		raw, err := json.Marshal(resultsSchema())
		So(err, ShouldBeNil)
		So(string(raw), ShouldContainSubstring, `"type":"array"`)
		So(string(raw), ShouldContainSubstring, `"channel"`)
		So(string(raw), ShouldContainSubstring, "YouTube video ID")
	})
}

func TestMissingDependency(t *testing.T) {
	Convey("Install hints depend on the platform", t, func() {
		So(installHint("mpv", "darwin"), ShouldEqual, "brew install mpv")
		So(installHint("mpv", "plan9"), ShouldBeEmpty)
		So(installHint("vlc", "linux"), ShouldBeEmpty)

		So(missingDependency("mpv", "linux"), ShouldContainSubstring, "sudo apt install mpv")
		So(missingDependency("vlc", "linux"), ShouldContainSubstring, key.PlayerExecutable)
	})
}

func TestExposedEnv(t *testing.T) {
	Convey("Every configuration key has an environment variable", t, func() {
		names, secret := exposedEnv()

		So(names, ShouldContain, "YTUNE_PLAYER_BACKEND")
		So(names, ShouldContain, where.EnvConfigPath)
		So(names, ShouldContain, config.EnvAPIKeyAlias)
		So(len(names), ShouldEqual, len(config.EnvExposed)+2)

		So(secret["YTUNE_YOUTUBE_API_KEY"], ShouldBeTrue)
		So(secret[config.EnvAPIKeyAlias], ShouldBeTrue)
		So(secret["YTUNE_PLAYER_BACKEND"], ShouldBeFalse)
	})
}
