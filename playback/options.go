package playback

import (
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/yogaland/yogaland/ads"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/key"
	"github.com/yogaland/yogaland/log"
)

// Options tune a session.
type Options struct {
	// Slots lists the ad breaks that are inserted. Banner and overlay are ignored.
	Slots []catalog.SlotType
	// Policy handles mid-roll breaks the playhead passed between ticks.
	Policy ads.Policy
	// EndTolerance is how many seconds before the reported duration main content counts as finished.
	EndTolerance int
	SeekStep     int
	// ControlsTimeout hides the controls overlay after this many seconds. Zero keeps it up.
	ControlsTimeout int
}

// DefaultOptions enables every break with the reference timings.
func DefaultOptions() Options {
	return Options{
		Slots:           []catalog.SlotType{catalog.PreRoll, catalog.MidRoll, catalog.PostRoll},
		Policy:          ads.PolicyDrop,
		EndTolerance:    2,
		SeekStep:        10,
		ControlsTimeout: 3,
	}
}

// OptionsFromConfig reads the session options from the active configuration.
func OptionsFromConfig() Options {
	options := Options{
		Policy:          ads.ParsePolicy(viper.GetString(key.AdsMidrollPolicy)),
		EndTolerance:    max(viper.GetInt(key.AdsEndTolerance), 0),
		SeekStep:        max(viper.GetInt(key.PlayerSeekStep), 1),
		ControlsTimeout: max(viper.GetInt(key.TUIControlsTimeout), 0),
	}

	if !viper.GetBool(key.AdsEnabled) {
		return options
	}

	for _, name := range viper.GetStringSlice(key.AdsSlots) {
		slot, err := catalog.ParseSlotType(name)
		if err != nil {
			log.Warnf("ignoring ad slot: %v", err)
			continue
		}
		options.Slots = append(options.Slots, slot)
	}
	options.Slots = lo.Uniq(options.Slots)

	return options
}

func (o Options) enabled(slot catalog.SlotType) bool {
	return lo.Contains(o.Slots, slot)
}
