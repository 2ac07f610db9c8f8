package tui

import (
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/ytune-cli/ytune/log"
	"github.com/ytune-cli/ytune/youtube"
)

func (b *statefulBubble) Init() tea.Cmd {
	if q := strings.TrimSpace(b.options.Query); q != "" {
		b.inputC.SetValue(q)
		b.searching = true
		return tea.Batch(textinput.Blink, b.runSearch(q), b.spinnerC.Tick)
	}

	return textinput.Blink
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if cmd := b.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case spinner.TickMsg:
		if b.busy() {
			var cmd tea.Cmd
			b.spinnerC, cmd = b.spinnerC.Update(msg)
			cmds = append(cmds, cmd)
		}
		return b, tea.Batch(cmds...)
	case surfaceChangedMsg:
		wasBusy := b.busy()
		b.surface = b.session.Playback().Surface()
		b.markPlaying()
		if !wasBusy && b.busy() {
			cmds = append(cmds, b.spinnerC.Tick)
		}
		return b, tea.Batch(cmds...)
	case searchDoneMsg:
		b.searching = false
		cmds = append(cmds, b.onSearchDone(msg))
		return b, tea.Batch(cmds...)
	case selectDoneMsg:
		if msg.err != nil {
			log.Warnf("select: %s", msg.err)
		}
		return b, tea.Batch(cmds...)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case searchState:
		cmd = b.updateSearch(msg)
	case resultsState:
		cmd = b.updateResults(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) onSearchDone(msg searchDoneMsg) tea.Cmd {
	if !msg.ok {
		return nil
	}

	items := lo.Map(msg.results, func(r *youtube.Result, _ int) list.Item {
		return &listItem{result: r}
	})

	cmd := b.resultsC.SetItems(items)
	b.resultsC.ResetSelected()
	b.markPlaying()

	if len(items) > 0 {
		b.resultsC.Title = "Results for " + msg.query
		b.newState(resultsState)
	}

	return cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.search):
			q := b.inputC.Value()
			if strings.TrimSpace(q) == "" || b.searching {
				return nil
			}

			b.searching = true
			b.searchSuggestion = mo.None[string]()
			return tea.Batch(b.runSearch(q), b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.inputC.CursorEnd()
			b.searchSuggestion = mo.None[string]()
			return nil
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.inputC.Value() != "" {
				b.inputC.SetValue("")
				b.searchSuggestion = mo.None[string]()
				return nil
			}

			if b.statesHistory.Len() == 0 && len(b.resultsC.Items()) > 0 {
				b.setState(resultsState)
				return nil
			}

			b.previousState()
			return nil
		}
	}

	var cmd tea.Cmd
	before := b.inputC.Value()
	b.inputC, cmd = b.inputC.Update(msg)
	if b.inputC.Value() != before {
		b.suggest()
	}

	return cmd
}

func (b *statefulBubble) selected() (*youtube.Result, bool) {
	item, ok := b.resultsC.SelectedItem().(*listItem)
	if !ok {
		return nil, false
	}
	return item.result, true
}

func (b *statefulBubble) updateResults(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.play):
			if r, ok := b.selected(); ok {
				return b.play(r)
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.toggle):
			return b.toggle()
		case bubblesKey.Matches(msg, b.keymap.stop):
			return b.stop()
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if r, ok := b.selected(); ok {
				return b.openInBrowser(r)
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.back), bubblesKey.Matches(msg, b.keymap.focusSearch):
			b.newState(searchState)
			return textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		}
	}

	var cmd tea.Cmd
	b.resultsC, cmd = b.resultsC.Update(msg)
	return cmd
}
