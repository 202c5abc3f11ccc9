// Package inline writes catalog queries in a form scripts can consume.
package inline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/log"
	"github.com/yogaland/yogaland/util"
)

// Run lists the catalog filtered by category and query, then applies the picker.
func Run(ctx context.Context, options *Options) error {
	if options.Provider == nil {
		return errors.New("inline: no catalog provider")
	}

	if options.Out == nil {
		options.Out = os.Stdout
	}

	videos, err := options.Provider.Videos(ctx)
	if err != nil {
		return fmt.Errorf("list videos: %w", err)
	}

	if options.Category != "" {
		videos = catalog.ByCategory(videos, options.Category)
	}
	videos = catalog.Search(videos, options.Query)

	if picker, ok := options.Picker.Get(); ok {
		if choice := picker(videos); choice != nil {
			videos = []*catalog.Video{choice}
		} else {
			videos = nil
		}
	}

	log.Infof("inline: %d videos matched", len(videos))

	if options.Json {
		output := &Output{
			Query:    options.Query,
			Category: options.Category,
			Result:   videos,
		}

		if options.IncludeAds {
			inventory, err := options.Provider.Ads(ctx)
			if err != nil {
				return fmt.Errorf("list ads: %w", err)
			}
			output.Ads = inventory
		}

		return writeJson(options.Out, output)
	}

	for _, v := range videos {
		if _, err := fmt.Fprintf(options.Out, "%s\t%s\t%s\t%s\n", v.ID, v.Title, v.Category, util.FormatClock(v.Duration)); err != nil {
			return err
		}
	}

	return nil
}
