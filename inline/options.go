package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/mo"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/util"
)

// Picker narrows a result list to one video, or nil.
type Picker func([]*catalog.Video) *catalog.Video

type Options struct {
	Out      io.Writer
	Provider catalog.Provider
	Query    string
	Category string
	Picker   mo.Option[Picker]
	Json     bool
	// IncludeAds adds the ad inventory to JSON output.
	IncludeAds bool
}

// ParsePicker accepts first, last, a zero-based index or a video id prefixed with "id:".
func ParsePicker(description string) (Picker, error) {
	switch description {
	case "first":
		return func(videos []*catalog.Video) *catalog.Video {
			if len(videos) == 0 {
				return nil
			}
			return videos[0]
		}, nil
	case "last":
		return func(videos []*catalog.Video) *catalog.Video {
			if len(videos) == 0 {
				return nil
			}
			return videos[len(videos)-1]
		}, nil
	}

	if id, ok := strings.CutPrefix(description, "id:"); ok {
		return func(videos []*catalog.Video) *catalog.Video {
			for _, v := range videos {
				if v.ID == id {
					return v
				}
			}
			return nil
		}, nil
	}

	idx, err := strconv.ParseUint(description, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid picker: %s", description)
	}

	return func(videos []*catalog.Video) *catalog.Video {
		if len(videos) == 0 {
			return nil
		}
		return videos[util.Min(int(idx), len(videos)-1)]
	}, nil
}
