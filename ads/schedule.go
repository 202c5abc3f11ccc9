package ads

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/yogaland/yogaland/catalog"
	"golang.org/x/exp/slices"
)

const (
	// MinScheduledDuration is the shortest video that receives mid-roll breaks.
	MinScheduledDuration = 180
	MinSpacing           = 120
	MaxSpacing           = 240
	MaxMidRolls          = 4
	// EdgeMargin keeps breaks away from the start and end of each segment.
	EdgeMargin = 60
	// TriggerWindow is how many seconds past its position an entry stays due.
	TriggerWindow = 2
)

// Entry is a scheduled mid-roll break.
type Entry struct {
	Position  int
	Ad        *catalog.Advertisement
	Triggered bool
}

func (e *Entry) String() string {
	return fmt.Sprintf("%ds %s", e.Position, e.Ad.ID)
}

// Schedule is ordered by ascending position.
type Schedule []*Entry

// Policy decides what happens to breaks the playhead passed without a tick landing in their window.
type Policy string

const (
	// PolicyDrop fires a break only inside its trigger window; missed breaks never fire.
	PolicyDrop Policy = "drop"
	// PolicyLatest fires the latest passed break once and retires the earlier ones.
	PolicyLatest Policy = "latest"
)

// ParsePolicy defaults to PolicyDrop for unknown values.
func ParsePolicy(s string) Policy {
	if Policy(strings.ToLower(strings.TrimSpace(s))) == PolicyLatest {
		return PolicyLatest
	}
	return PolicyDrop
}

// Take returns the break due at position and marks it triggered. Nil when none is due.
func (s Schedule) Take(position int, policy Policy) *Entry {
	switch policy {
	case PolicyLatest:
		var due *Entry
		for _, e := range s {
			if e.Triggered || e.Position > position {
				continue
			}
			e.Triggered = true
			due = e
		}
		return due
	default:
		for _, e := range s {
			if !e.Triggered && position >= e.Position && position <= e.Position+TriggerWindow {
				e.Triggered = true
				return e
			}
		}
		return nil
	}
}

// Markers lists the positions of every scheduled break.
func (s Schedule) Markers() []int {
	return lo.Map(s, func(e *Entry, _ int) int { return e.Position })
}

// Pending counts breaks not yet triggered.
func (s Schedule) Pending() int {
	return lo.CountBy(s, func(e *Entry) bool { return !e.Triggered })
}

// Scheduler places mid-roll breaks in a video.
type Scheduler struct {
	picker Picker
	rng    Rand
}

// NewScheduler uses picker to fill every break. A nil rng uses the process-wide source.
func NewScheduler(picker Picker, rng Rand) *Scheduler {
	if rng == nil {
		rng = globalRand{}
	}
	return &Scheduler{picker: picker, rng: rng}
}

// Schedule splits the video into equal segments and places one break inside each,
// at least EdgeMargin seconds from both segment edges. Segments too short for that,
// and segments for which no ad is eligible, get no break.
func (s *Scheduler) Schedule(video *catalog.Video) Schedule {
	duration := video.Duration
	if duration < MinScheduledDuration {
		return Schedule{}
	}

	spacing := MinSpacing + s.rng.IntN(MaxSpacing-MinSpacing+1)
	count := min(duration/spacing, MaxMidRolls)
	if count <= 0 {
		return Schedule{}
	}

	schedule := make(Schedule, 0, count)
	for i := range count {
		start := duration*i/count + EdgeMargin
		end := duration*(i+1)/count - EdgeMargin

		// positions are drawn from the open interval (start, end)
		if end-start < 2 {
			continue
		}
		position := start + 1 + s.rng.IntN(end-start-1)

		ad, ok := s.picker.Select(catalog.MidRoll, video).Get()
		if !ok {
			continue
		}

		schedule = append(schedule, &Entry{Position: position, Ad: ad})
	}

	slices.SortFunc(schedule, func(a, b *Entry) int {
		return a.Position - b.Position
	})

	return schedule
}
