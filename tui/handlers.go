package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ytune-cli/ytune/log"
	"github.com/ytune-cli/ytune/notify"
	"github.com/ytune-cli/ytune/open"
	"github.com/ytune-cli/ytune/query"
	"github.com/ytune-cli/ytune/youtube"
)

type searchDoneMsg struct {
	query   string
	results []*youtube.Result
	ok      bool
}

type selectDoneMsg struct {
	err error
}

// surfaceChangedMsg tells the bubble to re-read the now-playing surface.
type surfaceChangedMsg struct{}

// runSearch never cancels an earlier search: whichever finishes last fills the list.
func (b *statefulBubble) runSearch(q string) tea.Cmd {
	return func() tea.Msg {
		results, ok := b.session.Search(b.ctx, q)
		return searchDoneMsg{query: q, results: results, ok: ok}
	}
}

// play blocks for up to the readiness timeout, so it runs as a command.
func (b *statefulBubble) play(r *youtube.Result) tea.Cmd {
	return func() tea.Msg {
		return selectDoneMsg{err: b.session.Play(b.ctx, r)}
	}
}

func (b *statefulBubble) toggle() tea.Cmd {
	return func() tea.Msg {
		_ = b.session.Toggle()
		return nil
	}
}

func (b *statefulBubble) stop() tea.Cmd {
	return func() tea.Msg {
		if err := b.session.Stop(); err != nil {
			log.Errorf("stop: %s", err)
		}
		return nil
	}
}

func (b *statefulBubble) openInBrowser(r *youtube.Result) tea.Cmd {
	return func() tea.Msg {
		if err := open.Start(r.URL()); err != nil {
			log.Error(err)
			b.alerts.Notify(notify.Error("Could not open browser: " + err.Error()))
		}
		return nil
	}
}

func (b *statefulBubble) suggest() {
	b.searchSuggestion = query.Suggest(b.inputC.Value())
}
