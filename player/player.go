// Package player drives the external media engine that renders videos and ads.
// The primary backend is mpv, controlled over its JSON-IPC socket.
package player

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ErrLoad is wrapped by every failed Load.
var ErrLoad = errors.New("media failed to load")

// Engine is the media playback backend the playback controller drives.
// Positions are whole seconds.
type Engine interface {
	// Load replaces the current media and blocks until it is ready to play or fails.
	// The engine is left paused.
	Load(ctx context.Context, locator, title string) error

	Play() error
	Pause() error

	// Seek moves to an absolute position.
	Seek(seconds int) error

	// Position reports the playhead of the current media.
	Position() (int, error)

	// Close terminates the engine and releases its resources.
	Close() error
}

// Marker is implemented by engines that can show mid-roll positions on their own timeline.
type Marker interface {
	SetMarkers(positions []int) error
}

// Ender is implemented by engines that know when the current media has played to
// its end. Real media can be shorter than the duration the catalog lists.
type Ender interface {
	EOF() bool
}

const (
	NameMPV       = "mpv"
	NameSimulated = "simulated"
)

// Available lists the engine names New accepts.
func Available() []string {
	return []string{NameMPV, NameSimulated}
}

// New constructs the engine registered under name.
func New(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameMPV, "":
		return NewMPV(), nil
	case NameSimulated:
		return NewSimulated(), nil
	default:
		return nil, fmt.Errorf("unknown player %q, available: %s", name, strings.Join(Available(), ", "))
	}
}

// IsAvailable reports whether name is a known engine.
func IsAvailable(name string) bool {
	return lo.Contains(Available(), strings.ToLower(name))
}
