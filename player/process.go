package player

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/ytune-cli/ytune/log"
)

const defaultSettle = 500 * time.Millisecond

// Process is the direct-control backend: one player process per track,
// paused and resumed by suspending its process group.
type Process struct {
	exe    string
	settle time.Duration

	events    chan Event
	done      chan struct{}
	closeOnce sync.Once

	mu        sync.Mutex
	cmd       *exec.Cmd
	id        string
	gen       uint64
	confirmed bool
}

func NewProcess(exe string) *Process {
	return &Process{
		exe:    exe,
		settle: defaultSettle,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
}

func (p *Process) Events() <-chan Event {
	return p.events
}

// Load starts a player for id. The track counts as playing once the process
// has survived the settle window.
func (p *Process) Load(ctx context.Context, id string) error {
	url, err := watchURL(id)
	if err != nil {
		return err
	}

	select {
	case <-p.done:
		return ErrClosed
	default:
	}

	cmd := exec.Command(p.exe, "--no-video", "--no-terminal", "--ytdl-format=bestaudio/best", url)
	cmd.SysProcAttr = sysProcAttr()

	p.mu.Lock()
	p.stopLocked()
	if err = cmd.Start(); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("start %s: %w", p.exe, err)
	}
	p.gen++
	gen := p.gen
	p.cmd, p.id, p.confirmed = cmd, id, false
	p.mu.Unlock()

	failed := make(chan error, 1)
	go p.wait(cmd, gen, id, failed)

	log.WithField("id", id).Infof("%s started with pid %d", p.exe, cmd.Process.Pid)

	timer := time.NewTimer(p.settle)
	defer timer.Stop()

	select {
	case err = <-failed:
		return err
	case <-ctx.Done():
		p.stopIf(gen)
		return fmt.Errorf("%w: %w", ErrNotReady, ctx.Err())
	case <-timer.C:
		p.mu.Lock()
		defer p.mu.Unlock()

		if p.gen != gen || p.cmd != cmd {
			select {
			case err = <-failed:
				return err
			default:
				return errors.New("load superseded")
			}
		}

		p.confirmed = true
		return nil
	}
}

func (p *Process) Play() error {
	return p.signal(resumeProcess, EventPlaying)
}

func (p *Process) Pause() error {
	return p.signal(suspendProcess, EventPaused)
}

func (p *Process) signal(send func(*exec.Cmd) error, kind EventKind) error {
	p.mu.Lock()
	cmd, id := p.cmd, p.id
	p.mu.Unlock()

	if cmd == nil {
		return nil
	}

	if err := send(cmd); err != nil {
		return fmt.Errorf("%s %s: %w", kind, p.exe, err)
	}

	p.emit(Event{Kind: kind, ID: id})
	return nil
}

func (p *Process) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	return nil
}

func (p *Process) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
		_ = p.Stop()
	})
	return nil
}

func (p *Process) stopIf(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.gen == gen {
		p.stopLocked()
	}
}

// stopLocked kills the current process. Bumping gen turns its exit into a stale one.
func (p *Process) stopLocked() {
	if p.cmd == nil {
		return
	}

	p.gen++
	_ = killProcess(p.cmd)
	p.cmd, p.id = nil, ""
}

func (p *Process) wait(cmd *exec.Cmd, gen uint64, id string, failed chan<- error) {
	err := cmd.Wait()

	p.mu.Lock()
	if p.gen != gen {
		p.mu.Unlock()
		return
	}

	p.cmd, p.id = nil, ""

	if !p.confirmed {
		if err == nil {
			err = errors.New("exited immediately")
		}
		// buffered, and sent under the lock so Load always finds it
		failed <- fmt.Errorf("%s: %w", p.exe, err)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	if err != nil {
		p.emit(Event{Kind: EventError, ID: id, Err: fmt.Errorf("%s exited: %w", p.exe, err)})
		return
	}

	p.emit(Event{Kind: EventEnded, ID: id})
}

func (p *Process) emit(e Event) {
	select {
	case p.events <- e:
	case <-p.done:
	}
}

var _ Backend = (*Process)(nil)
