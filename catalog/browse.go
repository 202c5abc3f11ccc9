package catalog

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// FeaturedCount is how many videos lead the browse screen.
const FeaturedCount = 3

// ByCategory returns the videos whose category matches, ignoring case.
func ByCategory(videos []*Video, category string) []*Video {
	return lo.Filter(videos, func(v *Video, _ int) bool {
		return strings.EqualFold(v.Category, category)
	})
}

// Categories lists the distinct categories in catalog order.
func Categories(videos []*Video) []string {
	return lo.Uniq(lo.FilterMap(videos, func(v *Video, _ int) (string, bool) {
		return v.Category, v.Category != ""
	}))
}

// Featured returns the head of the catalog.
func Featured(videos []*Video) []*Video {
	return videos[:min(FeaturedCount, len(videos))]
}

// Search matches the query against title, description and category.
// An empty query returns every video.
func Search(videos []*Video, query string) []*Video {
	query = strings.TrimSpace(query)
	if query == "" {
		return videos
	}

	return lo.Filter(videos, func(v *Video, _ int) bool {
		for _, field := range []string{v.Title, v.Description, v.Category} {
			if fuzzy.MatchNormalizedFold(query, field) {
				return true
			}
		}
		return false
	})
}
