package version

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/color"
	"github.com/ytune-cli/ytune/constant"
	"github.com/ytune-cli/ytune/icon"
	"github.com/ytune-cli/ytune/key"
	"github.com/ytune-cli/ytune/log"
	"github.com/ytune-cli/ytune/style"
	"github.com/ytune-cli/ytune/util"
)

// Notify prints an update notice when a newer release exists.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()

	if err != nil {
		log.Warnf("version check: %s", err)
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/ytune-cli/ytune/releases/tag/v"+latest),
	)
}
