package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/ytune-cli/ytune/util"
)

// ipcCommand is one newline-delimited request on the mpv socket.
type ipcCommand struct {
	Command []any `json:"command"`
}

// ipcMessage is any line mpv writes back: a command reply or an event.
type ipcMessage struct {
	// replies
	Error string `json:"error"`
	Data  any    `json:"data"`

	// events
	Event     string `json:"event"`
	Name      string `json:"name"`
	Reason    string `json:"reason"`
	FileError string `json:"file_error"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	replyTimeout = 2 * time.Second
)

// sendCommand delivers command on a short-lived connection, retrying transient failures.
func sendCommand(socket string, command []any) (any, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		data, err := sendOnce(socket, command)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command %v failed after %d attempts: %w", command[0], maxRetries, lastErr)
}

func sendOnce(socket string, command []any) (any, error) {
	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer util.Ignore(conn.Close)

	if err = writeCommand(conn, command); err != nil {
		return nil, err
	}

	if err = conn.SetReadDeadline(time.Now().Add(replyTimeout)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	// mpv broadcasts events to every client, so skip those until the reply shows up
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}

		var msg ipcMessage
		if err = json.Unmarshal(line, &msg); err != nil {
			return nil, fmt.Errorf("unmarshal: %w", err)
		}

		if msg.Event != "" {
			continue
		}

		if msg.Error != "" && msg.Error != "success" {
			return nil, fmt.Errorf("mpv error: %s", msg.Error)
		}

		return msg.Data, nil
	}
}

func writeCommand(conn net.Conn, command []any) error {
	payload, err := json.Marshal(ipcCommand{Command: command})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if _, err = conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
