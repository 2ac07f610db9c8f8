// Package app wires the orchestrators into a Session, the single owner of all
// state a surface (TUI, mini mode, HTTP API) binds to.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/auth"
	"github.com/ytune-cli/ytune/history"
	"github.com/ytune-cli/ytune/key"
	"github.com/ytune-cli/ytune/log"
	"github.com/ytune-cli/ytune/notify"
	"github.com/ytune-cli/ytune/playback"
	"github.com/ytune-cli/ytune/player"
	"github.com/ytune-cli/ytune/search"
	"github.com/ytune-cli/ytune/youtube"
)

// ErrUnknownResult is returned when selecting an ID absent from the current results.
var ErrUnknownResult = errors.New("no such result in the current list")

const (
	WelcomeMessage     = "Welcome! Search for music to get started."
	StaleResultWarning = "That result is no longer listed. Please search again."
)

type Options struct {
	Notifier notify.Notifier

	// Backend and Searcher default to the configured player and a YouTube client.
	Backend  player.Backend
	Searcher search.Searcher
}

type Session struct {
	notifier notify.Notifier
	backend  player.Backend
	search   *search.Orchestrator
	playback *playback.Orchestrator

	mu      sync.Mutex
	results []*youtube.Result

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// New builds a session and starts consuming player events. Close releases it.
func New(opts Options) (*Session, error) {
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard
	}

	if opts.Backend == nil {
		backend, err := player.New(
			player.Kind(viper.GetString(key.PlayerBackend)),
			viper.GetString(key.PlayerExecutable),
		)
		if err != nil {
			return nil, err
		}
		opts.Backend = backend
	}

	if opts.Searcher == nil {
		apiKey, source := auth.APIKey()
		log.WithField("source", source).Info("resolved YouTube API key")
		opts.Searcher = youtube.New(apiKey)
	}

	timeout := time.Duration(viper.GetInt(key.PlayerReadyTimeout)) * time.Second
	if timeout <= 0 {
		timeout = 8 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		notifier: opts.Notifier,
		backend:  opts.Backend,
		search:   search.New(opts.Searcher, opts.Notifier),
		playback: playback.New(opts.Backend, opts.Notifier, timeout),
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		_ = s.playback.Run(ctx)
	}()

	return s, nil
}

// Playback exposes the orchestrator for toggling, stopping and observing.
func (s *Session) Playback() *playback.Orchestrator {
	return s.playback
}

// Search runs q and replaces the current results unless q was blank.
func (s *Session) Search(ctx context.Context, q string) ([]*youtube.Result, bool) {
	results, ok := s.search.Search(ctx, q)
	if !ok {
		return s.Results(), false
	}

	s.mu.Lock()
	s.results = results
	s.mu.Unlock()

	return results, true
}

func (s *Session) Results() []*youtube.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Select plays the current result with the given video ID.
// An ID missing from the list, typically because a later search replaced
// it, is reported as a notification and returned as ErrUnknownResult.
func (s *Session) Select(ctx context.Context, id string) error {
	r, ok := lo.Find(s.Results(), func(r *youtube.Result) bool {
		return r.ID == id
	})
	if !ok {
		s.notifier.Notify(notify.Warning(StaleResultWarning))
		return fmt.Errorf("%w: %s", ErrUnknownResult, id)
	}

	return s.Play(ctx, r)
}

// Play plays r whether or not it is still in the current results.
// Surfaces that hold the result the user picked call this directly.
func (s *Session) Play(ctx context.Context, r *youtube.Result) error {
	if err := s.playback.Select(ctx, r); err != nil {
		return err
	}

	// a superseded load also returns nil
	if viper.GetBool(key.HistorySaveOnPlay) && s.playback.Target().OrEmpty() == r {
		if err := history.Save(r); err != nil {
			log.WithField("id", r.ID).Warnf("save history: %s", err)
		}
	}

	return nil
}

// Welcome greets the user through the session notifier.
func (s *Session) Welcome() {
	s.notifier.Notify(notify.Info(WelcomeMessage))
}

func (s *Session) Toggle() error {
	return s.playback.Toggle()
}

func (s *Session) Stop() error {
	return s.playback.Stop()
}

// Close stops event handling and shuts the player down.
func (s *Session) Close() error {
	var err error
	s.once.Do(func() {
		s.cancel()
		<-s.done
		err = s.backend.Close()
	})
	return err
}
