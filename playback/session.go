package playback

import (
	"context"
	"sync"
	"time"

	"github.com/yogaland/yogaland/ads"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/history"
	"github.com/yogaland/yogaland/log"
	"github.com/yogaland/yogaland/player"
)

// TickInterval is the cadence of the session clock.
const TickInterval = time.Second

// Config wires a Session.
type Config struct {
	Video     *catalog.Video
	Catalog   catalog.Provider
	Engine    player.Engine
	Picker    ads.Picker
	Scheduler Scheduler
	History   *history.Selection
	Host      Host
	Options   Options

	// Interval overrides TickInterval when positive.
	Interval time.Duration
}

// Session runs a Machine against a real engine: one ticker goroutine for the clock
// and one goroutine per media load. All access to the machine is serialized.
type Session struct {
	mu      sync.Mutex
	machine *Machine
	engine  player.Engine
	catalog catalog.Provider
	video   *catalog.Video

	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	loads    sync.WaitGroup

	cancelLoad context.CancelFunc
	done       chan struct{}
	reason     EndReason
}

// NewSession prepares a session. Call Start to begin playback.
func NewSession(cfg Config) *Session {
	s := &Session{
		engine:   cfg.Engine,
		catalog:  cfg.Catalog,
		video:    cfg.Video,
		interval: cfg.Interval,
		done:     make(chan struct{}),
	}

	if s.interval <= 0 {
		s.interval = TickInterval
	}

	s.machine = NewMachine(cfg.Video, Deps{
		Engine:    cfg.Engine,
		Picker:    cfg.Picker,
		Scheduler: cfg.Scheduler,
		History:   cfg.History,
		Host:      &sessionHost{session: s, host: cfg.Host},
		Load:      s.load,
	}, cfg.Options)

	return s
}

// Start begins playback and the session clock. The session ends on its own
// when the video completes, on Back, or when ctx is cancelled. Starting an
// ended or already started session does nothing.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.Closed() || s.ctx != nil {
		return
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	if s.catalog != nil {
		go s.recordWatch(s.ctx)
	}

	s.machine.Start()
	go s.run()
}

// Done is closed once the session has ended.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Reason reports why the session ended. Valid after Done is closed.
func (s *Session) Reason() EndReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Snapshot()
}

func (s *Session) TogglePause()  { s.do((*Machine).TogglePause) }
func (s *Session) SeekForward()  { s.do((*Machine).SeekForward) }
func (s *Session) SeekBackward() { s.do((*Machine).SeekBackward) }
func (s *Session) Skip()         { s.do((*Machine).Skip) }
func (s *Session) Confirm()      { s.do((*Machine).Confirm) }
func (s *Session) Retry()        { s.do((*Machine).Retry) }

// Back stops the clock, pauses the engine and ends the session.
func (s *Session) Back() {
	s.do(func(m *Machine) {
		if s.cancel != nil {
			s.cancel()
		}
		m.Back()
	})
}

// Wait blocks until the session ended and every load goroutine returned.
func (s *Session) Wait() {
	<-s.done
	s.loads.Wait()
}

func (s *Session) do(command func(*Machine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	command(s.machine)
}

func (s *Session) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			// cancellation from the caller counts as leaving
			s.do((*Machine).Back)
			return
		case <-ticker.C:
			s.do((*Machine).Tick)
		}
	}
}

// load is the machine's LoadFunc. It runs with s.mu held.
func (s *Session) load(token uint64, locator, title string) {
	if s.cancelLoad != nil {
		s.cancelLoad()
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelLoad = cancel

	s.loads.Add(1)
	go func() {
		defer s.loads.Done()
		defer cancel()

		err := s.engine.Load(ctx, locator, title)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.machine.LoadDone(token, err)
	}()
}

func (s *Session) recordWatch(ctx context.Context) {
	if err := s.catalog.RecordWatch(ctx, s.video.ID); err != nil {
		log.With(log.Fields{"video": s.video.ID}).Warnf("record watch: %v", err)
	}
}

// sessionHost closes the session when the machine ends, then forwards to the real host.
type sessionHost struct {
	session *Session
	host    Host
}

func (h *sessionHost) Changed(snapshot Snapshot) {
	if h.host != nil {
		h.host.Changed(snapshot)
	}
}

func (h *sessionHost) Ended(reason EndReason) {
	s := h.session
	s.reason = reason
	if s.cancel != nil {
		s.cancel()
	}
	if s.cancelLoad != nil {
		s.cancelLoad()
	}
	close(s.done)

	if h.host != nil {
		h.host.Ended(reason)
	}
}
