package player

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Simulated plays nothing and advances its playhead with the wall clock.
// Locators starting with "fail:" fail to load.
type Simulated struct {
	mu      sync.Mutex
	locator string
	offset  time.Duration
	started time.Time
	playing bool
	closed  bool

	now func() time.Time
}

func NewSimulated() *Simulated {
	return &Simulated{now: time.Now}
}

func (s *Simulated) Load(ctx context.Context, locator, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("%w: engine closed", ErrLoad)
	}

	if strings.HasPrefix(locator, "fail:") {
		return fmt.Errorf("%w: %s", ErrLoad, strings.TrimPrefix(locator, "fail:"))
	}

	s.locator = locator
	s.offset = 0
	s.playing = false
	return nil
}

func (s *Simulated) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing {
		s.playing = true
		s.started = s.now()
	}
	return nil
}

func (s *Simulated) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playing {
		s.offset += s.now().Sub(s.started)
		s.playing = false
	}
	return nil
}

func (s *Simulated) Seek(seconds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.offset = time.Duration(max(seconds, 0)) * time.Second
	s.started = s.now()
	return nil
}

func (s *Simulated) Position() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locator == "" {
		return 0, errors.New("nothing loaded")
	}

	elapsed := s.offset
	if s.playing {
		elapsed += s.now().Sub(s.started)
	}
	return int(elapsed / time.Second), nil
}

func (s *Simulated) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.playing = false
	return nil
}
