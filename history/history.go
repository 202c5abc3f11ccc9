// Package history tracks the per-process state ad selection depends on: watch counts and the last ad shown per slot.
package history

import (
	"sync"

	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/constant"
)

// Selection is shared by every playback session of the process.
// Concurrent sessions interleave; the last write wins.
type Selection struct {
	mu        sync.Mutex
	watches   map[string]int
	lastShown map[catalog.SlotType]string
}

// NewSelection returns an empty history.
func NewSelection() *Selection {
	return &Selection{
		watches:   make(map[string]int),
		lastShown: make(map[catalog.SlotType]string),
	}
}

// RecordWatch increments the watch count of a video and returns the new count.
func (s *Selection) RecordWatch(videoID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.watches[videoID]++
	return s.watches[videoID]
}

// Watches returns how many sessions started for the key. Unknown keys count zero.
func (s *Selection) Watches(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watches[key]
}

// WatchesFor resolves the counter frequency capping uses for a video,
// falling back to the global key when there is no video.
func (s *Selection) WatchesFor(video *catalog.Video) int {
	if video == nil {
		return s.Watches(constant.GlobalWatchKey)
	}
	return s.Watches(video.ID)
}

// LastShown returns the id of the ad most recently chosen for the slot.
func (s *Selection) LastShown(slot catalog.SlotType) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.lastShown[slot]
	return id, ok
}

func (s *Selection) SetLastShown(slot catalog.SlotType, adID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastShown[slot] = adID
}

// Reset forgets everything.
func (s *Selection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.watches)
	clear(s.lastShown)
}
