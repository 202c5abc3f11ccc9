package catalog

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested video does not exist in the catalog.
var ErrNotFound = errors.New("not found")

// Provider supplies videos and advertisements to the player.
type Provider interface {
	// Videos lists the full catalog.
	Videos(ctx context.Context) ([]*Video, error)

	// Video returns the video with the given id or ErrNotFound.
	Video(ctx context.Context, id string) (*Video, error)

	// Ads lists every advertisement available for insertion.
	Ads(ctx context.Context) ([]*Advertisement, error)

	// RecordWatch reports that playback of the video started.
	RecordWatch(ctx context.Context, id string) error
}

// prepare normalizes and validates a freshly decoded catalog, dropping broken records.
func prepare(videos []*Video, ads []*Advertisement) ([]*Video, []*Advertisement, []error) {
	var (
		okVideos []*Video
		okAds    []*Advertisement
		errs     []error
	)

	for _, v := range videos {
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		okVideos = append(okVideos, v)
	}

	for _, a := range ads {
		a.Normalize()
		if err := a.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		okAds = append(okAds, a)
	}

	return okVideos, okAds, errs
}

// Prepare is the exported form of prepare for providers living in sub-packages.
func Prepare(videos []*Video, ads []*Advertisement) ([]*Video, []*Advertisement, error) {
	v, a, errs := prepare(videos, ads)
	if len(errs) > 0 {
		return v, a, fmt.Errorf("dropped %d invalid records: %w", len(errs), errors.Join(errs...))
	}
	return v, a, nil
}
