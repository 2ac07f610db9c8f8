package mini

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/ytune-cli/ytune/icon"
	"github.com/ytune-cli/ytune/open"
	"github.com/ytune-cli/ytune/playback"
	"github.com/ytune-cli/ytune/style"
	"github.com/ytune-cli/ytune/util"
	"github.com/ytune-cli/ytune/youtube"
)

type state int

const (
	searchState state = iota + 1
	selectState
	controlState
	quitState
)

// menu entries shared by several states
const (
	optNewSearch = "New search"
	optQuit      = "Quit"
	optPause     = "Pause"
	optResume    = "Resume"
	optStop      = "Stop"
	optOpen      = "Open in browser"
	optPick      = "Pick another"
)

func (m *mini) handleSearchState() error {
	q := m.query
	m.query = ""

	if q == "" {
		var err error
		if q, err = m.prompt.input("Search"); err != nil {
			return err
		}
	}

	erase := util.PrintErasable(icon.Get(icon.Progress) + " Searching...")
	results, ok := m.session.Search(m.ctx, q)
	erase()

	if ok && len(results) > 0 {
		m.newState(selectState)
	}

	return nil
}

func (m *mini) handleSelectState() error {
	results := m.results()
	options := lo.Map(results, func(r *youtube.Result, _ int) string {
		return fmt.Sprintf("%s %s", util.Ellipsize(r.Title, 70), style.Faint("· "+r.Channel))
	})
	options = append(options, optNewSearch, optQuit)

	i, err := m.prompt.choose("Select a song", options)
	if err != nil {
		return err
	}

	switch {
	case i < len(results):
		// failures are reported by the notifier
		_ = m.session.Play(m.ctx, results[i])
		if m.session.Playback().Target().IsPresent() {
			m.newState(controlState)
		}
	case options[i] == optNewSearch:
		m.newState(searchState)
	default:
		m.setState(quitState)
	}

	return nil
}

func (m *mini) handleControlState() error {
	surface := m.session.Playback().Surface()
	if surface.Track != nil {
		m.println(style.Bold(surface.Glyph+" "+surface.Track.Title), style.Faint("· "+surface.State.String()))
	}

	toggle := optResume
	if surface.State == playback.StatePlaying {
		toggle = optPause
	}

	options := []string{toggle, optStop, optOpen, optPick, optNewSearch, optQuit}
	i, err := m.prompt.choose("Control", options)
	if err != nil {
		return err
	}

	switch options[i] {
	case optPause, optResume:
		_ = m.session.Toggle()
	case optStop:
		_ = m.session.Stop()
		m.previousState()
	case optOpen:
		if surface.Track != nil {
			if err := open.Start(surface.Track.URL()); err != nil {
				m.println(icon.Get(icon.Fail), err)
			}
		}
	case optPick:
		m.previousState()
	case optNewSearch:
		m.newState(searchState)
	case optQuit:
		m.setState(quitState)
	}

	return nil
}
