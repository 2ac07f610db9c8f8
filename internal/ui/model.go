// Package ui renders transient notifications on top of the TUI.
//
// Every notification carries a sequence number taken when it was raised.
// Messages may reach the model out of order, so an older notification never
// replaces a newer one and the expiry of an older one never clears a newer one.
package ui

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ytune-cli/ytune/color"
	"github.com/ytune-cli/ytune/notify"
	"github.com/ytune-cli/ytune/style"
)

// NotificationMsg delivers a notification to the model.
type NotificationMsg struct {
	Seq uint64
	notify.Notification
}

type clearMsg struct {
	seq uint64
}

// Notifier turns notifications into NotificationMsg for a running program.
type Notifier struct {
	seq atomic.Uint64

	mu   sync.Mutex
	send func(tea.Msg)
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Attach sets the function used to deliver messages, typically tea.Program.Send.
// Notifications raised before Attach are dropped.
func (n *Notifier) Attach(send func(tea.Msg)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.send = send
}

// Notify never blocks: Program.Send waits for the event loop, which may be the caller.
func (n *Notifier) Notify(notification notify.Notification) {
	msg := NotificationMsg{Seq: n.seq.Add(1), Notification: notification}

	n.mu.Lock()
	send := n.send
	n.mu.Unlock()

	if send != nil {
		go send(msg)
	}
}

// Model holds the visible notification.
type Model struct {
	current notify.Notification
	seq     uint64
	visible bool

	// Duration overrides notify.Duration when set.
	Duration time.Duration
}

// Visible returns the notification being shown, if any.
func (m *Model) Visible() (notify.Notification, bool) {
	return m.current, m.visible
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		if msg.Seq < m.seq {
			return nil
		}

		m.seq = msg.Seq
		m.current = msg.Notification
		m.visible = true

		lifetime := m.Duration
		if lifetime == 0 {
			lifetime = notify.Duration
		}

		return tea.Tick(lifetime, func(time.Time) tea.Msg {
			return clearMsg{seq: msg.Seq}
		})
	case clearMsg:
		if msg.seq == m.seq {
			m.visible = false
		}
	}

	return nil
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if !m.visible {
		return content
	}

	text := m.current.String()
	switch m.current.Level {
	case notify.LevelError:
		text = style.Fg(color.Red)(text)
	case notify.LevelWarning:
		text = style.Fg(color.Yellow)(text)
	default:
		text = style.Fg(color.Gray)(text)
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + text
	return strings.Join(lines, "\n")
}
