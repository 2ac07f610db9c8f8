package mini

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytune-cli/ytune/app"
	"github.com/ytune-cli/ytune/filesystem"
	"github.com/ytune-cli/ytune/notify"
	"github.com/ytune-cli/ytune/playback"
	"github.com/ytune-cli/ytune/player"
	"github.com/ytune-cli/ytune/youtube"
)

func init() {
	filesystem.SetMemMapFs()
}

// script answers prompts in order and interrupts once it runs out.
type script struct {
	inputs  []string
	choices []string
	asked   []string
}

func (s *script) input(message string) (string, error) {
	s.asked = append(s.asked, message)
	if len(s.inputs) == 0 {
		return "", terminal.InterruptErr
	}
	in := s.inputs[0]
	s.inputs = s.inputs[1:]
	return in, nil
}

func (s *script) choose(message string, options []string) (int, error) {
	s.asked = append(s.asked, message)
	if len(s.choices) == 0 {
		return 0, terminal.InterruptErr
	}
	want := s.choices[0]
	s.choices = s.choices[1:]

	for i, o := range options {
		if o == want || (len(o) >= len(want) && o[:len(want)] == want) {
			return i, nil
		}
	}
	return 0, errors.New("no option " + want)
}

type searcher struct{}

func (searcher) Search(_ context.Context, q string) ([]*youtube.Result, error) {
	if q == "nothing" {
		return nil, youtube.ErrNoResults
	}
	return []*youtube.Result{{ID: "a", Title: "Alpha", Channel: "A"}, {ID: "b", Title: "Beta", Channel: "B"}}, nil
}

type backend struct {
	calls  []string
	events chan player.Event
}

func (b *backend) Load(_ context.Context, id string) error { b.calls = append(b.calls, "load "+id); return nil }
func (b *backend) Play() error                             { b.calls = append(b.calls, "play"); return nil }
func (b *backend) Pause() error                            { b.calls = append(b.calls, "pause"); return nil }
func (b *backend) Stop() error                             { b.calls = append(b.calls, "stop"); return nil }
func (b *backend) Events() <-chan player.Event             { return b.events }
func (b *backend) Close() error                            { return nil }

func TestMini(t *testing.T) {
	Convey("Given a mini session", t, func() {
		be := &backend{events: make(chan player.Event)}
		var out bytes.Buffer

		session, err := app.New(app.Options{
			Notifier: notify.NewWriter(&out),
			Backend:  be,
			Searcher: searcher{},
		})
		So(err, ShouldBeNil)
		defer session.Close()

		s := &script{}
		m := newMini(context.Background(), session, s, &out)

		Convey("Search, pick, pause and stop", func() {
			s.inputs = []string{"alpha"}
			s.choices = []string{"Beta", optPause, optStop, optQuit}

			So(m.run(), ShouldBeNil)
			So(be.calls, ShouldResemble, []string{"load b", "pause", "stop"})
			So(session.Playback().State(), ShouldEqual, playback.StateIdle)
			So(out.String(), ShouldContainSubstring, "Playing: Beta")
		})

		Convey("An empty search asks again", func() {
			s.inputs = []string{"nothing"}

			So(m.run(), ShouldBeNil)
			So(s.asked, ShouldResemble, []string{"Search", "Search"})
			So(out.String(), ShouldContainSubstring, "No videos found for your search")
		})

		Convey("The welcome note is printed", func() {
			session.Welcome()
			So(out.String(), ShouldContainSubstring, app.WelcomeMessage)
		})

		Convey("An initial query skips the first prompt", func() {
			m.query = "alpha"
			s.choices = []string{optNewSearch}

			So(m.run(), ShouldBeNil)
			So(s.asked, ShouldResemble, []string{"Select a song", "Search"})
		})
	})
}
