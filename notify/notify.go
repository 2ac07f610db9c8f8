// Package notify carries short user-facing messages from the orchestrators to whichever surface is active.
//
// A notification is visible for Duration and is then dropped. There is no
// queue: a newer notification replaces the visible one.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/samber/mo"
	"github.com/ytune-cli/ytune/color"
	"github.com/ytune-cli/ytune/icon"
	"github.com/ytune-cli/ytune/style"
)

// Duration is how long a notification stays visible.
const Duration = 3 * time.Second

// Level only selects the glyph shown next to the text.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Icon returns the glyph for the level in the configured icon variant.
func (l Level) Icon() string {
	switch l {
	case LevelWarning:
		return icon.Get(icon.Warning)
	case LevelError:
		return icon.Get(icon.Fail)
	default:
		return icon.Get(icon.Info)
	}
}

type Notification struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

func (n Notification) String() string {
	return n.Level.Icon() + " " + n.Text
}

func Info(text string) Notification    { return Notification{Level: LevelInfo, Text: text} }
func Warning(text string) Notification { return Notification{Level: LevelWarning, Text: text} }
func Error(text string) Notification   { return Notification{Level: LevelError, Text: text} }

// Notifier presents notifications. Implementations must not block the caller.
type Notifier interface {
	Notify(Notification)
}

// Func adapts a plain function to Notifier.
type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = Func(func(Notification) {})

// Writer prints each notification as one line. Lines scroll away on their
// own, so there is nothing to expire.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Notify(n Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()

	text := n.Text
	if n.Level == LevelError {
		text = style.Fg(color.Red)(text)
	}

	_, _ = fmt.Fprintf(w.out, "%s %s\n", n.Level.Icon(), text)
}

// Latest keeps the most recent notification and reports it only while it is younger than Duration.
type Latest struct {
	mu    sync.Mutex
	last  Notification
	at    time.Time
	clock func() time.Time
}

func NewLatest() *Latest {
	return &Latest{clock: time.Now}
}

func (l *Latest) Notify(n Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.last = n
	l.at = l.clock()
}

// Visible returns the current notification if it has not yet expired.
func (l *Latest) Visible() mo.Option[Notification] {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.at.IsZero() || l.clock().Sub(l.at) >= Duration {
		return mo.None[Notification]()
	}
	return mo.Some(l.last)
}
