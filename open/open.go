// Package open hands URLs to the desktop's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ytune-cli/ytune/constant"
)

// Start opens url with the system handler without waiting for it to exit.
func Start(url string) error {
	cmd, err := command(runtime.GOOS, url)
	if err != nil {
		return err
	}

	if err = cmd.Start(); err != nil {
		return err
	}

	// reap the handler so it does not linger as a zombie
	go func() { _ = cmd.Wait() }()
	return nil
}

func command(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", url), nil
	case constant.Darwin:
		return exec.Command("open", url), nil
	case constant.Linux, constant.FreeBSD:
		return exec.Command("xdg-open", url), nil
	case constant.Android:
		return exec.Command("termux-open-url", url), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
