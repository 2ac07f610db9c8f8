package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytune-cli/ytune/notify"
	"github.com/ytune-cli/ytune/player"
	"github.com/ytune-cli/ytune/youtube"
)

type fakeBackend struct {
	mu     sync.Mutex
	calls  []string
	events chan player.Event

	// load decides the outcome of Load; nil means immediately ready
	load func(ctx context.Context, id string) error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{events: make(chan player.Event, 8)}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) Load(ctx context.Context, id string) error {
	f.record("load " + id)
	if f.load != nil {
		return f.load(ctx, id)
	}
	return nil
}

func (f *fakeBackend) Play() error                 { f.record("play"); return nil }
func (f *fakeBackend) Pause() error                { f.record("pause"); return nil }
func (f *fakeBackend) Stop() error                 { f.record("stop"); return nil }
func (f *fakeBackend) Events() <-chan player.Event { return f.events }
func (f *fakeBackend) Close() error                { return nil }

type recorder struct {
	mu  sync.Mutex
	got []notify.Notification
}

func (r *recorder) Notify(n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	texts := make([]string, len(r.got))
	for i, n := range r.got {
		texts[i] = n.Text
	}
	return texts
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = nil
}

var (
	song  = &youtube.Result{ID: "id-1", Title: "Song One", Channel: "Chan"}
	other = &youtube.Result{ID: "id-2", Title: "Song Two", Channel: "Chan"}
)

func TestOrchestrator(t *testing.T) {
	ctx := context.Background()

	Convey("Given an idle orchestrator", t, func() {
		backend := newFakeBackend()
		notes := &recorder{}
		o := New(backend, notes, 200*time.Millisecond)

		var states []State
		o.OnChange(func(s Surface) { states = append(states, s.State) })

		So(o.State(), ShouldEqual, StateIdle)
		So(o.Target().IsAbsent(), ShouldBeTrue)

		Convey("Toggle without a target warns once and changes nothing", func() {
			So(o.Toggle(), ShouldBeNil)
			So(notes.got, ShouldHaveLength, 1)
			So(notes.got[0].Level, ShouldEqual, notify.LevelWarning)
			So(notes.got[0].Text, ShouldEqual, NoTargetWarning)
			So(o.State(), ShouldEqual, StateIdle)
			So(backend.Calls(), ShouldBeEmpty)
			So(states, ShouldBeEmpty)
		})

		Convey("Selecting goes through Loading to Playing", func() {
			So(o.Select(ctx, song), ShouldBeNil)
			So(states, ShouldResemble, []State{StateLoading, StatePlaying})
			So(notes.Texts(), ShouldResemble, []string{"Loading: Song One", "Playing: Song One"})
			So(backend.Calls(), ShouldResemble, []string{"load id-1"})
			So(o.Target().MustGet(), ShouldEqual, song)

			surface := o.Surface()
			So(surface.Track, ShouldEqual, song)
			So(surface.Glyph, ShouldEqual, StatePlaying.Glyph())

			Convey("Toggle asks to pause and waits for the event", func() {
				So(o.Toggle(), ShouldBeNil)
				So(backend.Calls(), ShouldContain, "pause")
				So(o.State(), ShouldEqual, StatePlaying)

				o.handle(player.Event{Kind: player.EventPaused, ID: song.ID})
				So(o.State(), ShouldEqual, StatePaused)
				So(o.Surface().Glyph, ShouldEqual, StatePaused.Glyph())

				Convey("And asks to play when paused", func() {
					So(o.Toggle(), ShouldBeNil)
					So(backend.Calls()[len(backend.Calls())-1], ShouldEqual, "play")

					o.handle(player.Event{Kind: player.EventPlaying, ID: song.ID})
					So(o.State(), ShouldEqual, StatePlaying)
				})
			})

			Convey("The end of the track returns to idle", func() {
				notes.reset()
				o.handle(player.Event{Kind: player.EventEnded, ID: song.ID})

				So(o.State(), ShouldEqual, StateEnded)
				So(o.State().Idle(), ShouldBeTrue)
				So(o.Target().IsAbsent(), ShouldBeTrue)
				So(o.Surface().Glyph, ShouldEqual, StateIdle.Glyph())
				So(notes.Texts(), ShouldResemble, []string{"Song ended"})

				Convey("So a later toggle warns again", func() {
					notes.reset()
					So(o.Toggle(), ShouldBeNil)
					So(notes.Texts(), ShouldResemble, []string{NoTargetWarning})
				})
			})

			Convey("A player error is reported with the title", func() {
				notes.reset()
				o.handle(player.Event{Kind: player.EventError, ID: song.ID, Err: errors.New("stream gone")})

				So(o.State(), ShouldEqual, StateError)
				So(o.State().Idle(), ShouldBeTrue)
				So(o.Target().IsAbsent(), ShouldBeTrue)
				So(notes.got, ShouldHaveLength, 1)
				So(notes.got[0].Level, ShouldEqual, notify.LevelError)
				So(notes.got[0].Text, ShouldEqual, `Error playing "Song One": stream gone`)
			})

			Convey("Events for another track are ignored", func() {
				notes.reset()
				o.handle(player.Event{Kind: player.EventEnded, ID: other.ID})
				So(o.State(), ShouldEqual, StatePlaying)
				So(notes.got, ShouldBeEmpty)
			})

			Convey("Selecting a new track passes through Loading again", func() {
				states = nil
				So(o.Select(ctx, other), ShouldBeNil)
				So(states, ShouldResemble, []State{StateLoading, StatePlaying})
				So(o.Target().MustGet(), ShouldEqual, other)

				Convey("And late events for the first are stale", func() {
					o.handle(player.Event{Kind: player.EventEnded, ID: song.ID})
					So(o.State(), ShouldEqual, StatePlaying)
				})
			})

			Convey("Stop unloads", func() {
				So(o.Stop(), ShouldBeNil)
				So(o.State(), ShouldEqual, StateIdle)
				So(o.Surface().Track, ShouldBeNil)
				So(backend.Calls(), ShouldContain, "stop")
			})
		})

		Convey("A load that never becomes ready times out", func() {
			backend.load = func(ctx context.Context, id string) error {
				<-ctx.Done()
				return fmt.Errorf("%w: %w", player.ErrNotReady, ctx.Err())
			}

			err := o.Select(ctx, song)

			var timeout *TimeoutError
			So(errors.As(err, &timeout), ShouldBeTrue)
			So(timeout.Timeout, ShouldEqual, 200*time.Millisecond)
			So(errors.Is(err, player.ErrNotReady), ShouldBeTrue)
			So(o.State(), ShouldEqual, StateError)
			So(o.Target().IsAbsent(), ShouldBeTrue)
			So(notes.Texts()[len(notes.Texts())-1], ShouldStartWith, `Error playing "Song One": player did not become ready`)
		})

		Convey("A failing load is a playback error", func() {
			backend.load = func(context.Context, string) error {
				return errors.New("loading failed")
			}

			err := o.Select(ctx, song)

			var playErr *Error
			So(errors.As(err, &playErr), ShouldBeTrue)
			So(playErr.Title, ShouldEqual, "Song One")
			So(o.State(), ShouldEqual, StateError)
			So(notes.Texts()[len(notes.Texts())-1], ShouldEqual, `Error playing "Song One": loading failed`)
		})

		Convey("A load superseded by a newer selection is dropped", func() {
			release := make(chan struct{})
			backend.load = func(ctx context.Context, id string) error {
				if id == song.ID {
					<-release
					return errors.New("replaced")
				}
				return nil
			}

			done := make(chan error, 1)
			go func() { done <- o.Select(ctx, song) }()

			// wait for the first load to be in flight
			for len(backend.Calls()) == 0 {
				time.Sleep(time.Millisecond)
			}

			So(o.Select(ctx, other), ShouldBeNil)
			close(release)

			So(<-done, ShouldBeNil)
			So(o.State(), ShouldEqual, StatePlaying)
			So(o.Target().MustGet(), ShouldEqual, other)
		})

		Convey("Run feeds backend events into the state machine", func() {
			So(o.Select(ctx, song), ShouldBeNil)

			runCtx, cancel := context.WithCancel(ctx)
			stopped := make(chan error, 1)
			go func() { stopped <- o.Run(runCtx) }()

			backend.events <- player.Event{Kind: player.EventEnded, ID: song.ID}

			deadline := time.Now().Add(time.Second)
			for o.State() != StateEnded && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			So(o.State(), ShouldEqual, StateEnded)

			cancel()
			So(errors.Is(<-stopped, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestState(t *testing.T) {
	Convey("State", t, func() {
		So(StatePaused.String(), ShouldEqual, "paused")
		So(State(42).String(), ShouldEqual, "State(42)")

		text, err := StateLoading.MarshalText()
		So(err, ShouldBeNil)
		So(string(text), ShouldEqual, "loading")

		var parsed State
		So(parsed.UnmarshalText([]byte("paused")), ShouldBeNil)
		So(parsed, ShouldEqual, StatePaused)
		So(parsed.UnmarshalText([]byte("rewinding")), ShouldNotBeNil)

		for _, s := range []State{StateIdle, StateEnded, StateError} {
			So(s.Idle(), ShouldBeTrue)
		}
		for _, s := range []State{StateLoading, StatePlaying, StatePaused} {
			So(s.Idle(), ShouldBeFalse)
		}
	})
}
