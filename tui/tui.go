// Package tui provides the primary terminal user interface.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ytune-cli/ytune/app"
	"github.com/ytune-cli/ytune/internal/ui"
	"github.com/ytune-cli/ytune/playback"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Query is searched immediately when set.
	Query string
}

// Run builds a session and runs the program until the user quits.
func Run(options *Options) error {
	notifier := ui.NewNotifier()

	session, err := app.New(app.Options{Notifier: notifier})
	if err != nil {
		return err
	}
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bubble := newBubble(ctx, session, notifier, options)
	program := tea.NewProgram(bubble, tea.WithAltScreen())

	notifier.Attach(program.Send)
	session.Playback().OnChange(func(playback.Surface) {
		// the bubble re-reads the surface, so reordering is harmless
		go program.Send(surfaceChangedMsg{})
	})
	session.Welcome()

	_, err = program.Run()
	return err
}
