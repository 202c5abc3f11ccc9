// Package playback implements the player session: a state machine that interleaves
// advertisement breaks with the main video and the runtime that drives it.
package playback

import (
	"github.com/yogaland/yogaland/catalog"
)

// Mode is the coarse state of a session.
type Mode int

const (
	Loading Mode = iota
	PlayingAd
	PlayingMain
	Error
)

func (m Mode) String() string {
	switch m {
	case Loading:
		return "loading"
	case PlayingAd:
		return "ad"
	case PlayingMain:
		return "main"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// EndReason tells the host why a session ended.
type EndReason int

const (
	// Completed means the video and any post-roll finished.
	Completed EndReason = iota
	// Back means the viewer left.
	Back
)

func (r EndReason) String() string {
	if r == Back {
		return "back"
	}
	return "completed"
}

// Snapshot is everything a view needs to render the session.
type Snapshot struct {
	Mode  Mode
	Video *catalog.Video

	// Slot is set while an ad break is loading or playing.
	Slot catalog.SlotType
	Ad   *catalog.Advertisement

	// Position and Duration describe whichever media is active.
	Position int
	Duration int

	CanSkip bool
	// SkipIn is the number of seconds until skipping becomes available.
	SkipIn int
	// ResumeAt is where main content continues after the current mid-roll.
	ResumeAt int

	Paused          bool
	ControlsVisible bool
	ErrorMessage    string

	// Markers are the scheduled mid-roll positions.
	Markers []int
	Ended   bool
}

// Remaining is the number of seconds left in the active media.
func (s Snapshot) Remaining() int {
	return max(s.Duration-s.Position, 0)
}

// Host receives session notifications. Calls are made with the session lock held,
// so implementations must not call back into the session synchronously.
type Host interface {
	Changed(Snapshot)
	Ended(EndReason)
}
