// Package query keeps the search history of the browse screen and suggests past searches.
package query

import (
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/yogaland/yogaland/filesystem"
	"github.com/yogaland/yogaland/key"
	"github.com/yogaland/yogaland/where"
	"golang.org/x/exp/slices"
)

// MaxSuggestions caps SuggestMany.
const MaxSuggestions = 5

type record struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var (
	mu       sync.Mutex
	store    *gache.Cache[map[string]*record]
	memoized = make(map[string][]string)
)

func history() *gache.Cache[map[string]*record] {
	if store == nil {
		store = gache.New[map[string]*record](&gache.Options{
			Path:       where.Queries(),
			FileSystem: &filesystem.GacheFs{},
		})
	}
	return store
}

func load() map[string]*record {
	records, expired, err := history().Get()
	if expired || err != nil || records == nil {
		return make(map[string]*record)
	}
	return records
}

// Remember records a search query, or raises its rank by weight if it was seen before.
func Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	records := load()
	if r, ok := records[q]; ok {
		r.Rank += weight
	} else {
		records[q] = &record{Rank: weight, Query: q}
	}

	clear(memoized)
	return history().Set(records)
}

// Forget removes a query from the history.
func Forget(q string) error {
	mu.Lock()
	defer mu.Unlock()

	records := load()
	delete(records, sanitize(q))

	clear(memoized)
	return history().Set(records)
}

// Suggest returns the best ranked past query matching q.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns past queries matching q, highest rank first.
// An exact repeat of q is never suggested.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)
	if q == "" {
		return []string{}
	}

	mu.Lock()
	defer mu.Unlock()

	if prev, ok := memoized[q]; ok {
		return prev
	}

	matching := lo.Filter(lo.Values(load()), func(r *record, _ int) bool {
		return r.Query != q && fuzzy.Match(q, r.Query)
	})

	slices.SortFunc(matching, func(a, b *record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Query, b.Query)
	})

	suggestions := lo.Map(matching, func(r *record, _ int) string {
		return r.Query
	})
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}

	memoized[q] = suggestions
	return suggestions
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
