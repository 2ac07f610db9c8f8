package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/app"
	"github.com/ytune-cli/ytune/constant"
	"github.com/ytune-cli/ytune/internal/ui"
	"github.com/ytune-cli/ytune/key"
	"github.com/ytune-cli/ytune/notify"
	"github.com/ytune-cli/ytune/playback"
	"github.com/ytune-cli/ytune/style"
	"github.com/ytune-cli/ytune/util"
)

// nowPlayingHeight is the number of rows reserved for the now-playing panel.
const nowPlayingHeight = 6

// statefulBubble encapsulates the application state, including component models and workflow tracking.
type statefulBubble struct {
	ctx     context.Context
	session *app.Session
	alerts  notify.Notifier

	state         state
	statesHistory util.Stack[state]
	searching     bool

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	inputC   textinput.Model
	resultsC list.Model
	helpC    help.Model

	surface          playback.Surface
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	width, height int
	options       *Options
}

// setState switches both the workflow state and the keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)

	if s == searchState {
		b.inputC.Focus()
	} else {
		b.inputC.Blur()
	}
}

// newState moves to s and remembers where we came from.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	b.statesHistory.Push(b.state)
	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// busy reports whether the spinner should run.
func (b *statefulBubble) busy() bool {
	return b.searching || b.surface.State == playback.StateLoading
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y - nowPlayingHeight

	listWidth := width - xx
	b.resultsC.SetSize(listWidth, height-yy-nowPlayingHeight)
	b.resultsC.Help.Width = listWidth
	b.helpC.Width = listWidth
	b.inputC.Width = b.width - lipgloss.Width(b.inputC.Prompt) - 1
}

// markPlaying flags the list item that is the current playback target.
func (b *statefulBubble) markPlaying() {
	target := b.session.Playback().Target()
	for _, item := range b.resultsC.Items() {
		it := item.(*listItem)
		it.playing = target.IsPresent() && target.MustGet() == it.result
	}
}

func newBubble(ctx context.Context, session *app.Session, alerts notify.Notifier, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		ctx:           ctx,
		session:       session,
		alerts:        alerts,
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		notifier:      &ui.Model{},
		surface:       session.Playback().Surface(),
		options:       options,
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search music (v%s)", constant.Version)
	bubble.inputC.CharLimit = 100
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(style.Text)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle.Foreground(style.Subtext)

	bubble.resultsC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.resultsC.KeyMap = keymap.forList()
	bubble.resultsC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.resultsC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.resultsC.Title = "Results"
	bubble.resultsC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1)
	bubble.resultsC.Styles.NoItems = paddingStyle
	bubble.resultsC.SetFilteringEnabled(false)
	bubble.resultsC.SetShowStatusBar(false)
	bubble.resultsC.SetStatusBarItemName("result", "results")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(searchState)
	return &bubble
}
