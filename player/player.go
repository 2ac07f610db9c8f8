// Package player drives an external media player.
//
// Two backends implement Backend: MPV talks to one long-lived mpv over its
// JSON-IPC socket, Process runs one player process per track and controls it
// with job-control signals. Both report what actually happened on Events.
package player

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ytune-cli/ytune/constant"
)

var (
	// ErrNotReady is returned by Load when the player did not confirm the track before ctx expired.
	ErrNotReady = errors.New("player not ready")

	// ErrUnsupported is returned for controls the backend cannot perform on this platform.
	ErrUnsupported = errors.New("not supported on this platform")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("player closed")
)

type EventKind int

const (
	EventPlaying EventKind = iota + 1
	EventPaused
	EventEnded
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventPlaying:
		return "playing"
	case EventPaused:
		return "paused"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a state change observed on the player, tagged with the video ID it concerns.
type Event struct {
	Kind EventKind
	ID   string
	Err  error
}

// Backend is a media player able to play one YouTube video at a time.
type Backend interface {
	// Load replaces whatever is playing with the video id and blocks until the
	// player confirms it is playing or ctx is done.
	Load(ctx context.Context, id string) error

	// Play resumes and Pause suspends the current track. The resulting state
	// is reported on Events, not by the return value.
	Play() error
	Pause() error

	// Stop unloads the current track without reporting an event.
	Stop() error

	// Events delivers state changes until Close.
	Events() <-chan Event

	Close() error
}

type Kind string

const (
	KindIPC     Kind = "ipc"
	KindProcess Kind = "process"
)

// Kinds lists the accepted values of player.backend.
var Kinds = []Kind{KindIPC, KindProcess}

// New constructs the backend of the given kind around the player executable exe.
// Nothing is started until the first Load.
func New(kind Kind, exe string) (Backend, error) {
	switch kind {
	case KindIPC:
		return NewMPV(exe), nil
	case KindProcess:
		return NewProcess(exe), nil
	default:
		return nil, fmt.Errorf("unknown player backend %q, expected one of %v", kind, Kinds)
	}
}

// Available reports whether exe can be found on PATH.
func Available(exe string) error {
	if _, err := exec.LookPath(exe); err != nil {
		return fmt.Errorf("%s is not installed or not in PATH: %w", exe, err)
	}
	return nil
}

// watchURL validates id and turns it into something the player can open.
// IDs are passed on the command line, so anything resembling a flag is rejected.
func watchURL(id string) (string, error) {
	id = strings.TrimSpace(id)
	switch {
	case id == "":
		return "", errors.New("empty video id")
	case strings.HasPrefix(id, "-"):
		return "", fmt.Errorf("invalid video id %q", id)
	case strings.ContainsAny(id, "\x00\n\r /?&#"):
		return "", fmt.Errorf("invalid characters in video id %q", id)
	}
	return constant.YouTubeWatchURL + id, nil
}
