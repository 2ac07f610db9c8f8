package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/ytune-cli/ytune/log"
)

// observed are the properties mpv reports on the listener connection.
// Observers are bound to the connection that registered them.
var observed = []string{"pause"}

// listener holds the persistent connection on which mpv pushes events.
type listener struct {
	conn    net.Conn
	handle  func(ipcMessage)
	stopped chan struct{}
	once    sync.Once
}

func listen(socket string, handle func(ipcMessage)) (*listener, error) {
	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		if err = writeCommand(conn, []any{"observe_property", i + 1, name}); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("observe %s: %w", name, err)
		}
	}

	l := &listener{
		conn:    conn,
		handle:  handle,
		stopped: make(chan struct{}),
	}
	go l.readLoop()

	log.Infof("mpv event listener started on %s", socket)
	return l, nil
}

// Done is closed once the read loop exits.
func (l *listener) Done() <-chan struct{} {
	return l.stopped
}

func (l *listener) stop() {
	l.once.Do(func() {
		_ = l.conn.Close()
	})
	<-l.stopped
}

func (l *listener) readLoop() {
	defer close(l.stopped)

	reader := bufio.NewReader(l.conn)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			l.dispatch(line)
		}

		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				log.Warnf("event listener read error: %v", err)
			}
			return
		}
	}
}

func (l *listener) dispatch(line []byte) {
	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		log.Debugf("skipping unparseable mpv line: %s", line)
		return
	}

	// replies to observe_property land here too
	if msg.Event == "" {
		return
	}

	l.handle(msg)
}
