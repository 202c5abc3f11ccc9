// Package main is the entry point for yogaland.
package main

import (
	"github.com/samber/lo"
	"github.com/yogaland/yogaland/cmd"
	"github.com/yogaland/yogaland/config"
	"github.com/yogaland/yogaland/internal/cache"
	"github.com/yogaland/yogaland/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cache.CollectGarbage()

	cmd.Execute()
}
