package playback

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/yogaland/yogaland/ads"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/history"
)

type fakeEngine struct {
	mu       sync.Mutex
	position int
	posErr   error
	loadErr  error
	seeks    []int
	plays    int
	pauses   int
	markers  []int
	loaded   []string
	eof      bool
}

func (e *fakeEngine) Load(_ context.Context, locator, _ string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loaded = append(e.loaded, locator)
	return e.loadErr
}

func (e *fakeEngine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.plays++
	return nil
}

func (e *fakeEngine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pauses++
	return nil
}

func (e *fakeEngine) Seek(seconds int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seeks = append(e.seeks, seconds)
	e.position = seconds
	return nil
}

func (e *fakeEngine) Position() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position, e.posErr
}

func (e *fakeEngine) Close() error { return nil }

func (e *fakeEngine) EOF() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eof
}

func (e *fakeEngine) reachEnd() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eof = true
}

func (e *fakeEngine) SetMarkers(positions []int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.markers = positions
	return nil
}

func (e *fakeEngine) setPosition(p int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position = p
}

func (e *fakeEngine) lastSeek() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.seeks) == 0 {
		return -1
	}
	return e.seeks[len(e.seeks)-1]
}

func (e *fakeEngine) pauseCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pauses
}

type fakeHost struct {
	mu        sync.Mutex
	snapshots []Snapshot
	ended     []EndReason
}

func (h *fakeHost) Changed(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshots = append(h.snapshots, s)
}

func (h *fakeHost) Ended(r EndReason) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ended = append(h.ended, r)
}

func (h *fakeHost) changes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.snapshots)
}

func (h *fakeHost) endings() []EndReason {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]EndReason(nil), h.ended...)
}

func (h *fakeHost) last() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshots[len(h.snapshots)-1]
}

type fixedScheduler struct {
	positions []int
	ad        *catalog.Advertisement
	calls     int
}

func (f *fixedScheduler) Schedule(*catalog.Video) ads.Schedule {
	f.calls++
	schedule := ads.Schedule{}
	for _, p := range f.positions {
		schedule = append(schedule, &ads.Entry{Position: p, Ad: f.ad})
	}
	return schedule
}

type loadRequest struct {
	token   uint64
	locator string
}

type harness struct {
	machine   *Machine
	engine    *fakeEngine
	host      *fakeHost
	history   *history.Selection
	scheduler *fixedScheduler
	loads     []loadRequest
}

func newAd(id string, slot catalog.SlotType, duration, skipAfter int) *catalog.Advertisement {
	ad := &catalog.Advertisement{
		ID:        id,
		Title:     id,
		Source:    "https://ads.example/" + id + ".mp4",
		Duration:  duration,
		SkipAfter: skipAfter,
		Slot:      slot,
	}
	ad.Normalize()
	return ad
}

func newVideo(duration int) *catalog.Video {
	return &catalog.Video{
		ID:       "v1",
		Title:    "Nature Documentary",
		Duration: duration,
		Source:   "https://cdn.example/v1.mp4",
		Category: "Documentary",
	}
}

func newHarness(video *catalog.Video, inventory []*catalog.Advertisement, scheduler *fixedScheduler, options Options) *harness {
	h := &harness{
		engine:    &fakeEngine{},
		host:      &fakeHost{},
		history:   history.NewSelection(),
		scheduler: scheduler,
	}

	h.machine = NewMachine(video, Deps{
		Engine:    h.engine,
		Picker:    ads.NewSelector(inventory, h.history, rand.New(rand.NewPCG(1, 1))),
		Scheduler: scheduler,
		History:   h.history,
		Host:      h.host,
		Load: func(token uint64, locator, _ string) {
			h.loads = append(h.loads, loadRequest{token: token, locator: locator})
		},
	}, options)

	return h
}

func (h *harness) lastLoad() loadRequest {
	return h.loads[len(h.loads)-1]
}

func (h *harness) completeLoad(err error) {
	h.machine.LoadDone(h.lastLoad().token, err)
}

func (h *harness) tick(n int) {
	for range n {
		h.machine.Tick()
	}
}
