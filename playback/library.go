package playback

import (
	"context"
	"sync"

	"github.com/spf13/viper"
	"github.com/yogaland/yogaland/ads"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/history"
	"github.com/yogaland/yogaland/key"
	"github.com/yogaland/yogaland/log"
	"github.com/yogaland/yogaland/player"
)

// Library holds what every session of the process shares: the catalog,
// the selection history and one media engine.
type Library struct {
	Catalog catalog.Provider
	History *history.Selection
	Options Options

	// EngineName selects the backend passed to player.New.
	EngineName string

	mu     sync.Mutex
	engine player.Engine
}

// NewLibrary reads the options and engine from the active configuration.
func NewLibrary(provider catalog.Provider) *Library {
	return &Library{
		Catalog:    provider,
		History:    history.NewSelection(),
		Options:    OptionsFromConfig(),
		EngineName: viper.GetString(key.Player),
	}
}

// Engine returns the shared engine, creating it on first use.
func (l *Library) Engine() (player.Engine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.engine != nil {
		return l.engine, nil
	}

	engine, err := player.New(l.EngineName)
	if err != nil {
		return nil, err
	}
	l.engine = engine
	return engine, nil
}

// NewSession prepares a session for video. The ad inventory is fetched per session;
// a catalog failure only means there are no ads.
func (l *Library) NewSession(ctx context.Context, video *catalog.Video, host Host) (*Session, error) {
	engine, err := l.Engine()
	if err != nil {
		return nil, err
	}

	inventory, err := l.Catalog.Ads(ctx)
	if err != nil {
		log.Warnf("ad inventory unavailable: %v", err)
	}

	selector := ads.NewSelector(inventory, l.History, nil)

	return NewSession(Config{
		Video:     video,
		Catalog:   l.Catalog,
		Engine:    engine,
		Picker:    selector,
		Scheduler: ads.NewScheduler(selector, nil),
		History:   l.History,
		Host:      host,
		Options:   l.Options,
	}), nil
}

// Close shuts the shared engine down.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.engine == nil {
		return nil
	}

	err := l.engine.Close()
	l.engine = nil
	return err
}
