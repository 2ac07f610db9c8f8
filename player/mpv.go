package player

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/ytune-cli/ytune/log"
	"github.com/ytune-cli/ytune/where"
)

const (
	socketPollDelay = 100 * time.Millisecond
	quitGrace       = 3 * time.Second
)

// MPV is the message-passing backend: a single idle mpv instance driven over JSON-IPC.
type MPV struct {
	exe    string
	socket string

	cmd    *exec.Cmd
	exited chan struct{}

	listener *listener
	events   chan Event
	done     chan struct{}

	startMu sync.Mutex
	started bool

	cmdMu sync.Mutex

	mu      sync.Mutex
	pending string
	ready   chan error
	loaded  string

	closeOnce sync.Once
}

func NewMPV(exe string) *MPV {
	return &MPV{
		exe:    exe,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
}

func (m *MPV) Events() <-chan Event {
	return m.events
}

func (m *MPV) Load(ctx context.Context, id string) error {
	url, err := watchURL(id)
	if err != nil {
		return err
	}

	if err = m.ensureStarted(ctx); err != nil {
		return err
	}

	ready := make(chan error, 1)
	m.mu.Lock()
	// the previous track is replaced whether or not this one loads
	m.pending, m.ready, m.loaded = id, ready, ""
	m.mu.Unlock()

	// a paused player would keep the replacement paused
	if _, err = m.send("set_property", "pause", false); err == nil {
		_, err = m.send("loadfile", url, "replace")
	}
	if err != nil {
		m.abandon(id)
		return fmt.Errorf("loadfile: %w", err)
	}

	select {
	case err = <-ready:
		return err
	case <-ctx.Done():
		m.cancelLoad(id)
		return fmt.Errorf("%w: %w", ErrNotReady, ctx.Err())
	case <-m.exited:
		return errors.New("mpv exited")
	case <-m.done:
		return ErrClosed
	}
}

func (m *MPV) Play() error {
	_, err := m.send("set_property", "pause", false)
	return err
}

func (m *MPV) Pause() error {
	_, err := m.send("set_property", "pause", true)
	return err
}

func (m *MPV) Stop() error {
	m.mu.Lock()
	m.loaded, m.pending, m.ready = "", "", nil
	m.mu.Unlock()

	if !m.isStarted() {
		return nil
	}

	_, err := m.send("stop")
	return err
}

// Close quits mpv, killing it when it does not exit in time.
func (m *MPV) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)

		if !m.isStarted() {
			return
		}

		_, _ = m.send("quit")

		if m.cmd != nil {
			select {
			case <-m.exited:
			case <-time.After(quitGrace):
				log.Warn("mpv did not quit in time, killing it")
				_ = killProcess(m.cmd)
			}
		}

		if m.listener != nil {
			m.listener.stop()
		}

		if m.cmd != nil {
			_ = os.Remove(m.socket)
		}
	})

	return nil
}

func (m *MPV) isStarted() bool {
	m.startMu.Lock()
	defer m.startMu.Unlock()
	return m.started
}

func (m *MPV) ensureStarted(ctx context.Context) error {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	select {
	case <-m.done:
		return ErrClosed
	default:
	}

	if m.started {
		select {
		case <-m.exited:
			// mpv died since the last track, start over
			m.started = false
		default:
			return nil
		}
	}

	if err := m.spawn(); err != nil {
		return err
	}

	if err := m.waitForSocket(ctx); err != nil {
		_ = killProcess(m.cmd)
		return err
	}

	return m.attach()
}

func (m *MPV) spawn() error {
	random := make([]byte, 4)
	if _, err := rand.Read(random); err != nil {
		return fmt.Errorf("generate socket name: %w", err)
	}
	m.socket = filepath.Join(where.Temp(), fmt.Sprintf("mpv-%x.sock", random))

	m.cmd = exec.Command(
		m.exe,
		"--idle=yes",
		"--no-video",
		"--no-terminal",
		"--really-quiet",
		"--ytdl-format=bestaudio/best",
		"--input-ipc-server="+m.socket,
	)
	m.cmd.SysProcAttr = sysProcAttr()

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.exe, err)
	}

	exited := make(chan struct{})
	m.exited = exited
	cmd := m.cmd
	go func() {
		_ = cmd.Wait()
		close(exited)
		m.onExit()
	}()

	log.WithField("socket", m.socket).Info("mpv started")
	return nil
}

func (m *MPV) waitForSocket(ctx context.Context) error {
	ticker := time.NewTicker(socketPollDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: socket %s: %w", ErrNotReady, m.socket, ctx.Err())
		case <-m.exited:
			return errors.New("mpv exited before its socket was ready")
		case <-ticker.C:
			conn, err := net.Dial("unix", m.socket)
			if err == nil {
				_ = conn.Close()
				return nil
			}
		}
	}
}

// attach opens the event connection on an already listening socket.
func (m *MPV) attach() error {
	l, err := listen(m.socket, m.handle)
	if err != nil {
		return err
	}

	m.listener = l
	m.started = true
	return nil
}

func (m *MPV) send(command ...any) (any, error) {
	select {
	case <-m.done:
		if command[0] != "quit" {
			return nil, ErrClosed
		}
	default:
	}

	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	return sendCommand(m.socket, command)
}

// abandon forgets a pending load of id, if it is still the pending one.
func (m *MPV) abandon(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == id {
		m.pending, m.ready = "", nil
	}
}

// cancelLoad abandons a pending load of id and stops mpv, which would
// otherwise go on to play a track nobody tracks. Holding cmdMu keeps a
// newer loadfile from slipping in between the check and the stop.
func (m *MPV) cancelLoad(id string) {
	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	m.mu.Lock()
	pending := m.pending == id
	if pending {
		m.pending, m.ready = "", nil
	}
	m.mu.Unlock()

	if !pending {
		return
	}

	if _, err := sendCommand(m.socket, []any{"stop"}); err != nil {
		log.WithField("id", id).Warnf("stop abandoned load: %s", err)
	}
}

func (m *MPV) emit(e Event) {
	log.WithFields(map[string]any{"event": e.Kind.String(), "id": e.ID}).Debug("mpv event")

	select {
	case m.events <- e:
	case <-m.done:
	}
}

func (m *MPV) handle(msg ipcMessage) {
	switch msg.Event {
	case "property-change":
		if msg.Name != "pause" {
			return
		}

		paused, ok := msg.Data.(bool)
		m.mu.Lock()
		id := m.loaded
		m.mu.Unlock()

		if !ok || id == "" {
			return
		}

		if paused {
			m.emit(Event{Kind: EventPaused, ID: id})
		} else {
			m.emit(Event{Kind: EventPlaying, ID: id})
		}

	case "file-loaded":
		m.mu.Lock()
		ready := m.ready
		if m.pending != "" {
			m.loaded = m.pending
		}
		m.pending, m.ready = "", nil
		m.mu.Unlock()

		if ready != nil {
			ready <- nil
		}

	case "end-file":
		m.endFile(msg)
	}
}

func (m *MPV) endFile(msg ipcMessage) {
	var cause error
	switch msg.Reason {
	case "eof":
	case "error":
		cause = errors.New(lo.CoalesceOrEmpty(msg.FileError, "playback failed"))
	case "quit":
		cause = errors.New("player quit")
	default:
		// "stop" and "redirect" are side effects of our own loadfile and stop
		return
	}

	m.mu.Lock()
	if m.pending != "" && cause != nil {
		// the track being loaded failed before file-loaded
		ready := m.ready
		m.pending, m.ready = "", nil
		m.mu.Unlock()

		if ready != nil {
			ready <- cause
		}
		return
	}

	id := m.loaded
	m.loaded = ""
	m.mu.Unlock()

	if id == "" {
		return
	}

	if cause != nil {
		m.emit(Event{Kind: EventError, ID: id, Err: cause})
	} else {
		m.emit(Event{Kind: EventEnded, ID: id})
	}
}

func (m *MPV) onExit() {
	select {
	case <-m.done:
		return
	default:
	}

	m.mu.Lock()
	id := m.loaded
	m.loaded = ""
	m.mu.Unlock()

	log.Warn("mpv exited unexpectedly")
	if id != "" {
		m.emit(Event{Kind: EventError, ID: id, Err: errors.New("mpv exited unexpectedly")})
	}
}

var _ Backend = (*MPV)(nil)
