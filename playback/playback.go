// Package playback keeps the state of the single playback target and relays
// play and pause intent to a player backend.
//
// The orchestrator never assumes a control succeeded: Playing, Paused, Ended
// and Error are entered when the backend reports them on its event channel,
// which Run consumes. The one exception is readiness after Select, which is
// the return of Backend.Load.
package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/samber/mo"
	"github.com/ytune-cli/ytune/log"
	"github.com/ytune-cli/ytune/notify"
	"github.com/ytune-cli/ytune/player"
	"github.com/ytune-cli/ytune/youtube"
)

// NoTargetWarning is shown when play or pause is requested with nothing loaded.
const NoTargetWarning = "No music loaded. Please search and select a song first."

type Orchestrator struct {
	backend  player.Backend
	notifier notify.Notifier
	timeout  time.Duration

	mu        sync.Mutex
	state     State
	target    *youtube.Result
	shown     *youtube.Result
	observers []func(Surface)

	// loads counts Select calls so a superseded load can tell it lost
	loads uint64
}

// New returns an idle orchestrator. timeout bounds the wait for the backend
// to confirm a selected track.
func New(backend player.Backend, notifier notify.Notifier, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		backend:  backend,
		notifier: notifier,
		timeout:  timeout,
	}
}

// OnChange registers fn to receive a snapshot after every transition.
// fn is called synchronously from the goroutine that caused the transition
// and must not block.
func (o *Orchestrator) OnChange(fn func(Surface)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, fn)
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Target returns the loaded track, absent when the state is idle.
func (o *Orchestrator) Target() mo.Option[*youtube.Result] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return mo.TupleToOption(o.target, o.target != nil)
}

func (o *Orchestrator) Surface() Surface {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.surfaceLocked()
}

func (o *Orchestrator) surfaceLocked() Surface {
	return Surface{State: o.state, Track: o.shown, Glyph: o.state.Glyph()}
}

// Select makes r the playback target and waits for the backend to confirm it.
// A failed or timed out load leaves the orchestrator in StateError and is
// also returned. A load superseded by a later Select or Stop returns nil.
func (o *Orchestrator) Select(ctx context.Context, r *youtube.Result) error {
	var load uint64
	o.update(nil, func() {
		o.loads++
		load = o.loads
		o.target, o.shown, o.state = r, r, StateLoading
	})
	current := func() bool { return o.loads == load && o.target == r }
	o.notifier.Notify(notify.Info("Loading: " + r.Title))

	entry := log.WithField("id", r.ID)
	entry.Info("loading")

	loadCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	err := o.backend.Load(loadCtx, r.ID)

	if err == nil {
		if o.update(current, func() { o.state = StatePlaying }) {
			o.notifier.Notify(notify.Info("Playing: " + r.Title))
		}
		return nil
	}

	if ctx.Err() != nil {
		// shutting down, nobody is left to tell
		o.update(current, func() { o.target, o.state = nil, StateIdle })
		return ctx.Err()
	}

	var failure error
	if errors.Is(err, player.ErrNotReady) {
		failure = &TimeoutError{Title: r.Title, Timeout: o.timeout, Err: err}
	} else {
		failure = &Error{Title: r.Title, Err: err}
	}

	if !o.fail(current, r, failure) {
		entry.Debug("load superseded")
		return nil
	}

	entry.Error(failure)
	return failure
}

// Toggle asks the backend to pause when playing and to play otherwise.
// The state itself changes only when the backend reports it.
func (o *Orchestrator) Toggle() error {
	o.mu.Lock()
	target, state := o.target, o.state
	o.mu.Unlock()

	if target == nil {
		o.notifier.Notify(notify.Warning(NoTargetWarning))
		return nil
	}

	var err error
	if state == StatePlaying {
		err = o.backend.Pause()
	} else {
		err = o.backend.Play()
	}

	if err != nil {
		log.WithField("id", target.ID).Errorf("toggle: %s", err)
		o.notifier.Notify(notify.Error("Playback control failed: " + err.Error()))
	}

	return err
}

// Stop unloads the target and returns to StateIdle.
func (o *Orchestrator) Stop() error {
	o.update(nil, func() {
		o.loads++
		o.target, o.shown, o.state = nil, nil, StateIdle
	})
	return o.backend.Stop()
}

// Run consumes backend events until ctx is done.
func (o *Orchestrator) Run(ctx context.Context) error {
	events := o.backend.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-events:
			o.handle(e)
		}
	}
}

func (o *Orchestrator) handle(e player.Event) {
	o.mu.Lock()
	target, state := o.target, o.state
	o.mu.Unlock()

	entry := log.WithField("id", e.ID).WithField("event", e.Kind.String())

	if target == nil || target.ID != e.ID {
		entry.Debug("stale player event")
		return
	}

	current := func() bool { return o.target == target }

	switch e.Kind {
	case player.EventPlaying, player.EventPaused:
		// readiness during loading is decided by Select
		if state == StateLoading {
			return
		}

		next := StatePlaying
		if e.Kind == player.EventPaused {
			next = StatePaused
		}

		if next != state {
			o.update(current, func() { o.state = next })
		}

	case player.EventEnded:
		entry.Info("ended")
		if o.update(current, func() { o.target, o.state = nil, StateEnded }) {
			o.notifier.Notify(notify.Info("Song ended"))
		}

	case player.EventError:
		err := e.Err
		if err == nil {
			err = errors.New("unknown player error")
		}
		entry.Error(err)
		o.fail(current, target, &Error{Title: target.Title, Err: err})
	}
}

// fail moves to StateError unless the failure is stale and reports cause.
func (o *Orchestrator) fail(current func() bool, r *youtube.Result, cause error) bool {
	if !o.update(current, func() { o.target, o.state = nil, StateError }) {
		return false
	}

	detail := cause
	var playErr *Error
	if errors.As(cause, &playErr) {
		detail = playErr.Err
	}

	o.notifier.Notify(notify.Error("Error playing \"" + r.Title + "\": " + detail.Error()))
	return true
}

// update applies mutate under the lock and publishes the result.
// A non-nil valid is checked under the same lock and vetoes the update.
func (o *Orchestrator) update(valid func() bool, mutate func()) bool {
	o.mu.Lock()
	if valid != nil && !valid() {
		o.mu.Unlock()
		return false
	}
	mutate()
	snapshot, observers := o.surfaceLocked(), o.observers
	o.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
	return true
}
