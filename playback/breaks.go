package playback

import (
	"github.com/yogaland/yogaland/catalog"
)

// adBreak is an ad slot in progress. complete runs once the ad ends, is skipped, or fails to load.
type adBreak interface {
	slot() catalog.SlotType
	complete(m *Machine)
}

type preRoll struct{}

func (preRoll) slot() catalog.SlotType { return catalog.PreRoll }

func (preRoll) complete(m *Machine) { m.loadMain(0) }

type midRoll struct {
	resumeAt int
}

func (midRoll) slot() catalog.SlotType { return catalog.MidRoll }

func (b midRoll) complete(m *Machine) { m.loadMain(b.resumeAt) }

type postRoll struct{}

func (postRoll) slot() catalog.SlotType { return catalog.PostRoll }

func (postRoll) complete(m *Machine) { m.end(Completed) }
