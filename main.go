// Package main is the entry point for ytune.
package main

import (
	"github.com/samber/lo"
	"github.com/ytune-cli/ytune/cmd"
	"github.com/ytune-cli/ytune/config"
	"github.com/ytune-cli/ytune/internal/cache"
	"github.com/ytune-cli/ytune/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
