// Package ads decides which advertisement fills a slot and where mid-roll breaks fall in a video.
package ads

import (
	"math/rand/v2"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/history"
)

// Rand is the randomness the scheduler and selector draw from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Picker chooses an advertisement for a slot.
type Picker interface {
	Select(slot catalog.SlotType, video *catalog.Video) mo.Option[*catalog.Advertisement]
}

// Selector picks advertisements subject to slot, targeting, frequency caps and anti-repetition.
type Selector struct {
	ads     []*catalog.Advertisement
	history *history.Selection

	mu  sync.Mutex
	rng Rand
}

// NewSelector builds a selector over the ad inventory. A nil rng uses the process-wide source.
func NewSelector(ads []*catalog.Advertisement, h *history.Selection, rng Rand) *Selector {
	if rng == nil {
		rng = globalRand{}
	}

	return &Selector{
		ads:     ads,
		history: h,
		rng:     rng,
	}
}

// Select returns the ad to show in slot. The video is the targeting context and may be nil.
// The only side effect is recording the choice as the slot's last shown ad.
func (s *Selector) Select(slot catalog.SlotType, video *catalog.Video) mo.Option[*catalog.Advertisement] {
	candidates := s.Candidates(slot, video)
	if len(candidates) == 0 {
		return mo.None[*catalog.Advertisement]()
	}

	if last, ok := s.history.LastShown(slot); ok && len(candidates) > 1 {
		fresh := lo.Reject(candidates, func(a *catalog.Advertisement, _ int) bool {
			return a.ID == last
		})
		if len(fresh) > 0 {
			candidates = fresh
		}
	}

	s.mu.Lock()
	chosen := candidates[s.rng.IntN(len(candidates))]
	s.mu.Unlock()

	s.history.SetLastShown(slot, chosen.ID)
	return mo.Some(chosen)
}

// Candidates lists the ads eligible for slot before anti-repetition and the random draw.
func (s *Selector) Candidates(slot catalog.SlotType, video *catalog.Video) []*catalog.Advertisement {
	candidates := lo.Filter(s.ads, func(a *catalog.Advertisement, _ int) bool {
		return a.Slot == slot
	})

	if video != nil && video.Category != "" {
		targeted := lo.Filter(candidates, func(a *catalog.Advertisement, _ int) bool {
			return a.Targets(video.Category)
		})
		if len(targeted) > 0 {
			candidates = targeted
		}
	}

	watches := s.history.WatchesFor(video)
	return lo.Filter(candidates, func(a *catalog.Advertisement, _ int) bool {
		return watches%frequency(a) == 0
	})
}

func frequency(a *catalog.Advertisement) int {
	return max(a.Frequency, catalog.DefaultFrequency)
}
