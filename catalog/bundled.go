package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"github.com/yogaland/yogaland/log"
)

//go:embed bundled.json
var bundledData []byte

type bundledFile struct {
	Videos []*Video          `json:"videos"`
	Ads    []*Advertisement `json:"ads"`
}

// Bundled serves the catalog compiled into the binary.
type Bundled struct {
	videos []*Video
	ads    []*Advertisement

	mu      sync.Mutex
	watches map[string]int
}

// NewBundled decodes the embedded catalog.
func NewBundled() (*Bundled, error) {
	return decodeBundled(bundledData)
}

func decodeBundled(data []byte) (*Bundled, error) {
	var file bundledFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode bundled catalog: %w", err)
	}

	videos, ads, errs := prepare(file.Videos, file.Ads)
	for _, err := range errs {
		log.Warnf("bundled catalog: %v", err)
	}

	return &Bundled{
		videos:  videos,
		ads:     ads,
		watches: make(map[string]int),
	}, nil
}

func (b *Bundled) Videos(context.Context) ([]*Video, error) {
	return b.videos, nil
}

func (b *Bundled) Video(_ context.Context, id string) (*Video, error) {
	v, ok := lo.Find(b.videos, func(v *Video) bool { return v.ID == id })
	if !ok {
		return nil, fmt.Errorf("video %s: %w", id, ErrNotFound)
	}
	return v, nil
}

func (b *Bundled) Ads(context.Context) ([]*Advertisement, error) {
	return b.ads, nil
}

// RecordWatch keeps a process-local count; the bundled catalog has nowhere to report to.
func (b *Bundled) RecordWatch(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.watches[id]++
	return nil
}

// Watches returns how many times RecordWatch was called for id.
func (b *Bundled) Watches(id string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.watches[id]
}
