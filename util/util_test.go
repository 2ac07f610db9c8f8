package util

import (
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytune-cli/ytune/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "result", "results"), ShouldEqual, "1 result")
		So(Quantify(12, "result", "results"), ShouldEqual, "12 results")
		So(Quantify(0, "result", "results"), ShouldEqual, "0 results")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize("élan"), ShouldEqual, "Élan")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestEllipsize(t *testing.T) {
	Convey("Ellipsize", t, func() {
		So(Ellipsize("short", 10), ShouldEqual, "short")
		So(Ellipsize("a longer title", 6), ShouldEqual, "a lon…")
		So(Ellipsize("anything", 0), ShouldEqual, "anything")
	})
}

func TestStack(t *testing.T) {
	Convey("Given an empty stack", t, func() {
		var s Stack[int]

		So(s.Pop(), ShouldEqual, 0)
		So(s.Peek(), ShouldEqual, 0)

		Convey("Pushes pop in reverse order", func() {
			s.Push(1)
			s.Push(2)
			So(s.Len(), ShouldEqual, 2)
			So(s.Peek(), ShouldEqual, 2)
			So(s.Pop(), ShouldEqual, 2)
			So(s.Pop(), ShouldEqual, 1)
			So(s.Len(), ShouldEqual, 0)
		})
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete removes directories recursively", t, func() {
		fs := filesystem.API()
		So(fs.MkdirAll("/tmp/ytune/a", 0o755), ShouldBeNil)
		So(fs.WriteFile("/tmp/ytune/a/f", []byte("x"), 0o644), ShouldBeNil)

		So(Delete("/tmp/ytune"), ShouldBeNil)
		So(lo.Must(fs.Exists("/tmp/ytune")), ShouldBeFalse)
	})
}
