package version

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/yogaland/yogaland/color"
	"github.com/yogaland/yogaland/constant"
	"github.com/yogaland/yogaland/icon"
	"github.com/yogaland/yogaland/key"
	"github.com/yogaland/yogaland/log"
	"github.com/yogaland/yogaland/style"
	"github.com/yogaland/yogaland/util"
)

// Notify prints a short notice when a newer release exists.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a new version...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()

	if err != nil {
		log.Warnf("version check: %v", err)
		return
	}

	if newer, err := Compare(latest, constant.Version); err != nil || newer <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(fmt.Sprintf("https://github.com/%s/releases/tag/v%s", constant.Repository, latest)),
	)
}
