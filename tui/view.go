package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/ytune-cli/ytune/icon"
	"github.com/ytune-cli/ytune/playback"
	"github.com/ytune-cli/ytune/style"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
	nowPlayingStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(style.BorderColor).
				Padding(0, 1)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case searchState:
		output = b.viewSearch()
	case resultsState:
		output = b.viewResults()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(lipgloss.JoinVertical(lipgloss.Left, output, b.viewNowPlaying()))
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search Music"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, style.Faint(icon.Get(icon.Search)+" "+suggestion+"  (tab)"))
	} else {
		lines = append(lines, "")
	}

	if b.searching {
		lines = append(lines, "", b.spinnerC.View()+" Searching...")
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewResults() string {
	return listExtraPaddingStyle.Render(b.resultsC.View())
}

func (b *statefulBubble) viewNowPlaying() string {
	width := b.width - 4
	if width < 10 {
		width = 10
	}
	clip := func(s string) string {
		return truncate.StringWithTail(s, uint(width), "…")
	}

	var lines []string
	s := b.surface

	glyph := s.Glyph
	if s.State == playback.StateLoading {
		glyph = b.spinnerC.View()
	}

	if s.Track == nil {
		lines = []string{
			style.Faint(glyph + " Nothing playing"),
			style.Faint("Search and select a song to start"),
			"",
		}
	} else {
		lines = []string{
			glyph + " " + style.Bold(clip(s.Track.Title)),
			style.Fg(style.Subtext)(clip(s.Track.Channel)) + " " + style.Faint("· "+s.State.String()),
			style.Faint(clip(s.Track.Thumbnail)),
		}
	}

	return paddingStyle.UnsetPaddingTop().Render(nowPlayingStyle.Width(width).Render(strings.Join(lines, "\n")))
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
