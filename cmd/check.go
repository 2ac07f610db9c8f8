package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/constant"
	"github.com/ytune-cli/ytune/icon"
	"github.com/ytune-cli/ytune/key"
	"github.com/ytune-cli/ytune/player"
	"github.com/ytune-cli/ytune/style"
)

// CheckDependencies exits with an install hint when the configured player is not on PATH.
func CheckDependencies() {
	exe := viper.GetString(key.PlayerExecutable)
	if err := player.Available(exe); err != nil {
		fmt.Println(missingDependency(exe, runtime.GOOS))
		os.Exit(1)
	}
}

func installHint(dep, goos string) string {
	// only mpv has well-known package names
	if dep != "mpv" {
		return ""
	}

	switch goos {
	case constant.Darwin:
		return "brew install mpv"
	case constant.Linux:
		return "sudo apt install mpv"
	case constant.Windows:
		return "scoop install mpv"
	default:
		return ""
	}
}

func missingDependency(dep, goos string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The player '%s' was not found in your PATH.", dep))

	var suggestion string
	if hint := installHint(dep, goos); hint != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(hint))
	} else {
		suggestion = fmt.Sprintf("\n\nSet %s to a player that is installed.", style.New().Foreground(style.AccentColor).Render(key.PlayerExecutable))
	}

	return box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	)
}
