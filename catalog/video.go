// Package catalog defines the videos and advertisements served to the player and the providers that supply them.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Video is a playable catalog entry.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Duration in whole seconds.
	Duration  int    `json:"duration"`
	Source    string `json:"videoSource"`
	Thumbnail string `json:"thumbnail"`
	// Category is the single label used for ad targeting.
	Category string `json:"category"`

	Genre  string `json:"genre,omitempty"`
	Rating string `json:"rating,omitempty"`
	Year   int    `json:"year,omitempty"`
}

func (v *Video) String() string {
	return v.Title
}

// Validate reports the first invariant the video breaks.
func (v *Video) Validate() error {
	switch {
	case strings.TrimSpace(v.ID) == "":
		return errors.New("video: empty id")
	case v.Duration <= 0:
		return fmt.Errorf("video %s: duration must be positive, got %d", v.ID, v.Duration)
	case strings.TrimSpace(v.Source) == "":
		return fmt.Errorf("video %s: empty source", v.ID)
	}
	return nil
}
