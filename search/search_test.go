package search

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytune-cli/ytune/notify"
	"github.com/ytune-cli/ytune/youtube"
)

type fakeSearcher struct {
	calls   []string
	results []*youtube.Result
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, q string) ([]*youtube.Result, error) {
	f.calls = append(f.calls, q)
	return f.results, f.err
}

func TestOrchestrator(t *testing.T) {
	ctx := context.Background()

	Convey("Given an orchestrator", t, func() {
		fake := &fakeSearcher{}
		var got []notify.Notification
		var remembered []string

		o := New(fake, notify.Func(func(n notify.Notification) { got = append(got, n) }))
		o.Remember = func(q string) error {
			remembered = append(remembered, q)
			return nil
		}

		Convey("A blank query is a no-op", func() {
			results, ok := o.Search(ctx, "   \t ")
			So(ok, ShouldBeFalse)
			So(results, ShouldBeNil)
			So(fake.calls, ShouldBeEmpty)
			So(got, ShouldBeEmpty)
		})

		Convey("The query is trimmed before searching", func() {
			fake.results = []*youtube.Result{{ID: "a"}, {ID: "b"}}
			results, ok := o.Search(ctx, "  synthwave ")
			So(ok, ShouldBeTrue)
			So(fake.calls, ShouldResemble, []string{"synthwave"})
			So(len(results), ShouldEqual, 2)
			So(results[0].ID, ShouldEqual, "a")
			So(got, ShouldBeEmpty)
			So(remembered, ShouldResemble, []string{"synthwave"})
		})

		Convey("Each failure yields an empty list and one notification", func() {
			cases := []struct {
				err   error
				text  string
				level notify.Level
			}{
				{youtube.ErrMissingKey, "YouTube API key not configured", notify.LevelError},
				{&youtube.RequestError{StatusCode: 403, Body: "quota"}, "Search failed: API error 403: quota", notify.LevelError},
				{youtube.ErrNoResults, "No videos found for your search", notify.LevelInfo},
				{errors.New("connection reset"), "Search failed: connection reset", notify.LevelError},
			}

			for _, c := range cases {
				got = nil
				fake.err = c.err

				results, ok := o.Search(ctx, "q")
				So(ok, ShouldBeTrue)
				So(results, ShouldNotBeNil)
				So(results, ShouldBeEmpty)
				So(len(got), ShouldEqual, 1)
				So(got[0].Text, ShouldEqual, c.text)
				So(got[0].Level, ShouldEqual, c.level)
			}

			So(remembered, ShouldBeEmpty)
		})
	})
}
