// Package mini implements a prompt-driven interface for searching and playing music.
package mini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/ytune-cli/ytune/app"
	"github.com/ytune-cli/ytune/notify"
	"github.com/ytune-cli/ytune/util"
	"github.com/ytune-cli/ytune/youtube"
)

// truncateAt is the survey page size, adjusted to the terminal height.
var truncateAt = 12

type Options struct {
	Query string
}

type mini struct {
	ctx     context.Context
	session *app.Session
	prompt  prompter
	out     io.Writer

	state         state
	statesHistory util.Stack[state]

	query string
}

func newMini(ctx context.Context, session *app.Session, prompt prompter, out io.Writer) *mini {
	return &mini{
		ctx:           ctx,
		session:       session,
		prompt:        prompt,
		out:           out,
		state:         searchState,
		statesHistory: util.Stack[state]{},
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	m.statesHistory.Push(m.state)
	m.setState(s)
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

// Run prompts until the user quits. Notifications are printed as lines.
func Run(options *Options) error {
	session, err := app.New(app.Options{Notifier: notify.NewWriter(os.Stdout)})
	if err != nil {
		return err
	}
	defer session.Close()

	if _, h, err := util.TerminalSize(); err == nil && h > 6 {
		truncateAt = h - 4
	}

	m := newMini(context.Background(), session, surveyPrompter{}, os.Stdout)
	m.query = options.Query
	session.Welcome()
	return m.run()
}

func (m *mini) run() error {
	for m.state != quitState {
		if err := m.handleState(); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}
	}

	return nil
}

func (m *mini) handleState() error {
	switch m.state {
	case searchState:
		return m.handleSearchState()
	case selectState:
		return m.handleSelectState()
	case controlState:
		return m.handleControlState()
	}

	return nil
}

func (m *mini) results() []*youtube.Result {
	return m.session.Results()
}

func (m *mini) println(a ...any) {
	_, _ = fmt.Fprintln(m.out, a...)
}
