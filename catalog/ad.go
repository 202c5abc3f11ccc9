package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// SlotType is the placement of an advertisement relative to the main content.
type SlotType string

const (
	PreRoll  SlotType = "pre-roll"
	MidRoll  SlotType = "mid-roll"
	PostRoll SlotType = "post-roll"
	Banner   SlotType = "banner"
	Overlay  SlotType = "overlay"
)

// SlotTypes lists every known slot in declaration order.
func SlotTypes() []SlotType {
	return []SlotType{PreRoll, MidRoll, PostRoll, Banner, Overlay}
}

// ParseSlotType accepts the canonical names plus the unhyphenated spellings.
func ParseSlotType(s string) (SlotType, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	switch normalized {
	case "preroll":
		normalized = string(PreRoll)
	case "midroll":
		normalized = string(MidRoll)
	case "postroll":
		normalized = string(PostRoll)
	}

	if t := SlotType(normalized); lo.Contains(SlotTypes(), t) {
		return t, nil
	}
	return "", fmt.Errorf("unknown slot type %q", s)
}

// DefaultFrequency makes an ad eligible on every watch.
const DefaultFrequency = 1

// Advertisement is an ad creative that can fill one slot type.
type Advertisement struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Source   string   `json:"videoSource"`
	Duration int      `json:"duration"`
	// SkipAfter is the elapsed second at which skipping becomes available.
	SkipAfter    int      `json:"skipAfter"`
	Slot         SlotType `json:"type"`
	Advertiser   string   `json:"advertiser,omitempty"`
	ClickThrough string   `json:"clickThroughUrl,omitempty"`
	// Frequency N makes the ad eligible once every N watches of the triggering content.
	Frequency int `json:"frequency,omitempty"`
	// TargetCategories restricts the ad to content in these categories. Empty means every category.
	TargetCategories []string `json:"targetCategory,omitempty"`
}

func (a *Advertisement) String() string {
	if a.Advertiser != "" {
		return fmt.Sprintf("%s (%s)", a.Title, a.Advertiser)
	}
	return a.Title
}

// Normalize fills the defaulted fields so eligibility never depends on zero values.
func (a *Advertisement) Normalize() {
	if a.Frequency <= 0 {
		a.Frequency = DefaultFrequency
	}
	if a.Slot == "" {
		a.Slot = PreRoll
	}
	a.TargetCategories = lo.Compact(a.TargetCategories)
}

// TargetsAll reports whether the ad has no category restriction.
func (a *Advertisement) TargetsAll() bool {
	return len(a.TargetCategories) == 0
}

// Targets reports whether the ad may run against content of the given category.
func (a *Advertisement) Targets(category string) bool {
	return a.TargetsAll() || lo.Contains(a.TargetCategories, category)
}

// Validate reports the first invariant the advertisement breaks.
func (a *Advertisement) Validate() error {
	switch {
	case strings.TrimSpace(a.ID) == "":
		return errors.New("ad: empty id")
	case a.Duration <= 0:
		return fmt.Errorf("ad %s: duration must be positive, got %d", a.ID, a.Duration)
	case a.SkipAfter < 0 || a.SkipAfter > a.Duration:
		return fmt.Errorf("ad %s: skipAfter %d outside [0, %d]", a.ID, a.SkipAfter, a.Duration)
	case a.Frequency < 1:
		return fmt.Errorf("ad %s: frequency must be positive, got %d", a.ID, a.Frequency)
	case strings.TrimSpace(a.Source) == "":
		return fmt.Errorf("ad %s: empty source", a.ID)
	}

	if _, err := ParseSlotType(string(a.Slot)); err != nil {
		return fmt.Errorf("ad %s: %w", a.ID, err)
	}
	return nil
}
