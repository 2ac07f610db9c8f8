package playback

import (
	"fmt"

	"github.com/ytune-cli/ytune/icon"
	"github.com/ytune-cli/ytune/youtube"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StatePaused
	StateEnded
	StateError
)

var stateNames = map[State]string{
	StateIdle:    "idle",
	StateLoading: "loading",
	StatePlaying: "playing",
	StatePaused:  "paused",
	StateEnded:   "ended",
	StateError:   "error",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

// Idle reports whether nothing is loaded. Ended and Error count as idle.
func (s State) Idle() bool {
	return s == StateIdle || s == StateEnded || s == StateError
}

// Glyph is the control shown for the state: pause while playing,
// busy while loading and play otherwise.
func (s State) Glyph() string {
	switch s {
	case StatePlaying:
		return icon.Get(icon.Pause)
	case StateLoading:
		return icon.Get(icon.Busy)
	default:
		return icon.Get(icon.Play)
	}
}

// Surface is a snapshot of the now-playing panel.
// Track stays set after a track ends or fails so the panel keeps showing it.
type Surface struct {
	State State           `json:"state"`
	Track *youtube.Result `json:"track,omitempty"`
	Glyph string          `json:"glyph"`
}
