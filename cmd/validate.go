package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/yogaland/yogaland/ads"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/key"
	"github.com/yogaland/yogaland/player"
	"github.com/yogaland/yogaland/provider"
)

// validators reject values that would only fail later, at playback time.
var validators = map[string]func(any) error{
	key.CatalogSource: func(v any) error {
		return oneOf(v.(string), provider.IDs())
	},
	key.Player: func(v any) error {
		return oneOf(v.(string), player.Available())
	},
	key.AdsMidrollPolicy: func(v any) error {
		return oneOf(v.(string), []string{string(ads.PolicyDrop), string(ads.PolicyLatest)})
	},
	key.AdsSlots: func(v any) error {
		for _, name := range v.([]string) {
			slot, err := catalog.ParseSlotType(name)
			if err != nil {
				return err
			}
			if !lo.Contains([]catalog.SlotType{catalog.PreRoll, catalog.MidRoll, catalog.PostRoll}, slot) {
				return fmt.Errorf("%s is not an ad break", slot)
			}
		}
		return nil
	},
	key.CatalogPageSize: positive,
	key.CatalogCacheTTL: nonNegative,
	key.PlayerSeekStep:  positive,
}

func validateValue(k string, v any) error {
	validate, ok := validators[k]
	if !ok {
		return nil
	}

	if err := validate(v); err != nil {
		return fmt.Errorf("invalid value for %s: %w", k, err)
	}
	return nil
}

func oneOf(value string, options []string) error {
	if lo.ContainsBy(options, func(o string) bool { return strings.EqualFold(o, value) }) {
		return nil
	}
	return fmt.Errorf("%q is not one of %s", value, strings.Join(options, ", "))
}

func positive(v any) error {
	if n, ok := v.(int); ok && n <= 0 {
		return fmt.Errorf("%d must be positive", n)
	}
	return nil
}

func nonNegative(v any) error {
	if n, ok := v.(int); ok && n < 0 {
		return fmt.Errorf("%d must not be negative", n)
	}
	return nil
}
