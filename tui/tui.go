// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yogaland/yogaland/playback"
	"github.com/yogaland/yogaland/provider"
	"github.com/yogaland/yogaland/util"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Category preselects a category filter on the browse screen.
	Category string
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	catalog, err := provider.Default()
	if err != nil {
		return err
	}

	library := playback.NewLibrary(catalog)
	defer util.Ignore(library.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bubble := newBubble(ctx, library, options)
	bubble.newState(loadingState)

	_, err = tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
