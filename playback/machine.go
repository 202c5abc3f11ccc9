package playback

import (
	"fmt"

	"github.com/yogaland/yogaland/ads"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/history"
	"github.com/yogaland/yogaland/log"
	"github.com/yogaland/yogaland/player"
	"github.com/yogaland/yogaland/util"
)

// LoadFunc starts loading media asynchronously. The runtime must report the outcome
// through Machine.LoadDone with the same token.
type LoadFunc func(token uint64, locator, title string)

// Scheduler places mid-roll breaks for a video.
type Scheduler interface {
	Schedule(video *catalog.Video) ads.Schedule
}

// Deps are the collaborators a Machine drives.
type Deps struct {
	Engine    player.Engine
	Picker    ads.Picker
	Scheduler Scheduler
	History   *history.Selection
	Host      Host
	Load      LoadFunc
}

// Machine is the single-threaded playback state machine. It is not safe for
// concurrent use; Session serializes access to it.
type Machine struct {
	video   *catalog.Video
	deps    Deps
	options Options

	mode     Mode
	brk      adBreak
	ad       *catalog.Advertisement
	schedule ads.Schedule

	position int
	duration int
	elapsed  int
	canSkip  bool

	// resumeAt is where the next main content entry seeks to.
	resumeAt int
	entered  bool

	paused       bool
	controls     bool
	controlsIdle int
	errMessage   string

	token   uint64
	started bool
	closed  bool
}

// NewMachine prepares a session for video. Nothing happens until Start.
func NewMachine(video *catalog.Video, deps Deps, options Options) *Machine {
	return &Machine{
		video:    video,
		deps:     deps,
		options:  options,
		mode:     Loading,
		duration: video.Duration,
	}
}

// Start records the watch, schedules mid-rolls and begins with the pre-roll or the video.
func (m *Machine) Start() {
	if m.started || m.closed {
		return
	}
	m.started = true

	m.deps.History.RecordWatch(m.video.ID)

	if m.options.enabled(catalog.MidRoll) {
		m.schedule = m.deps.Scheduler.Schedule(m.video)
	}
	log.With(log.Fields{"video": m.video.ID, "breaks": m.schedule.Markers()}).Info("session started")

	if m.options.enabled(catalog.PreRoll) {
		m.selectBreak(preRoll{})
		return
	}
	m.loadMain(0)
}

// Tick advances the session by one second. It is the only clock the machine has.
func (m *Machine) Tick() {
	if m.closed {
		return
	}

	switch m.mode {
	case PlayingMain:
		m.tickMain()
	case PlayingAd:
		m.tickAd()
	}
}

func (m *Machine) tickMain() {
	if m.controls && m.options.ControlsTimeout > 0 {
		m.controlsIdle++
		if m.controlsIdle >= m.options.ControlsTimeout {
			m.controls = false
		}
	}

	if m.paused {
		m.emit()
		return
	}

	pos, err := m.deps.Engine.Position()
	if err != nil {
		log.Debugf("poll position: %v", err)
		return
	}
	m.position = util.Clamp(pos, 0, m.duration)

	if entry := m.schedule.Take(m.position, m.options.Policy); entry != nil {
		m.triggerMidRoll(entry)
		return
	}

	if m.position >= m.duration-m.options.EndTolerance || m.engineAtEnd() {
		m.finishMain()
		return
	}

	m.emit()
}

func (m *Machine) engineAtEnd() bool {
	ender, ok := m.deps.Engine.(player.Ender)
	return ok && ender.EOF()
}

func (m *Machine) tickAd() {
	m.elapsed++
	m.position = min(m.elapsed, m.duration)

	if m.elapsed >= m.ad.SkipAfter {
		m.canSkip = true
	}

	if m.elapsed >= m.ad.Duration {
		m.finishAd()
		return
	}

	m.emit()
}

// LoadDone applies the outcome of a load. Outcomes of superseded loads are dropped.
func (m *Machine) LoadDone(token uint64, err error) {
	if m.closed || token != m.token || m.mode != Loading {
		log.Debugf("dropping stale load result %d (current %d)", token, m.token)
		return
	}

	if m.brk != nil {
		if err != nil {
			log.With(log.Fields{"ad": m.ad.ID, "slot": m.brk.slot()}).Warnf("ad failed to load: %v", err)
			m.finishAd()
			return
		}
		m.enterAd()
		return
	}

	if err != nil {
		log.With(log.Fields{"video": m.video.ID}).Errorf("video failed to load: %v", err)
		m.mode = Error
		m.errMessage = fmt.Sprintf("Unable to play %q. Check your connection and try again.", m.video.Title)
		m.emit()
		return
	}
	m.enterMain()
}

// TogglePause pauses or resumes main content. Ignored in every other mode.
func (m *Machine) TogglePause() {
	if m.closed || m.mode != PlayingMain {
		return
	}

	var err error
	if m.paused {
		err = m.deps.Engine.Play()
	} else {
		err = m.deps.Engine.Pause()
	}
	if err != nil {
		log.Warnf("toggle pause: %v", err)
		return
	}

	m.paused = !m.paused
	m.emit()
}

// Seek moves main content by delta seconds, clamped to the video.
func (m *Machine) Seek(delta int) {
	if m.closed || m.mode != PlayingMain {
		return
	}

	target := util.Clamp(m.position+delta, 0, m.duration)
	if err := m.deps.Engine.Seek(target); err != nil {
		log.Warnf("seek to %d: %v", target, err)
		return
	}

	m.position = target
	m.emit()
}

// SeekForward and SeekBackward move by the configured step.
func (m *Machine) SeekForward()  { m.Seek(m.options.SeekStep) }
func (m *Machine) SeekBackward() { m.Seek(-m.options.SeekStep) }

// Skip ends the current ad once it is skippable.
func (m *Machine) Skip() {
	if m.closed || m.mode != PlayingAd || !m.canSkip {
		return
	}

	log.With(log.Fields{"ad": m.ad.ID, "elapsed": m.elapsed}).Info("ad skipped")
	m.finishAd()
}

// Confirm skips an eligible ad, or toggles the controls overlay over main content.
func (m *Machine) Confirm() {
	if m.closed {
		return
	}

	switch m.mode {
	case PlayingAd:
		m.Skip()
	case PlayingMain:
		m.controls = !m.controls
		m.controlsIdle = 0
		m.emit()
	}
}

// Retry reloads the video after a failure, keeping the resume point.
func (m *Machine) Retry() {
	if m.closed || m.mode != Error {
		return
	}
	m.loadMain(m.resumeAt)
}

// Back ends the session from any state. Later ticks and load results are ignored.
func (m *Machine) Back() {
	if m.closed {
		return
	}
	m.end(Back)
}

// Closed reports whether the session has ended.
func (m *Machine) Closed() bool {
	return m.closed
}

// Snapshot describes the current state.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		Mode:            m.mode,
		Video:           m.video,
		Ad:              m.ad,
		Position:        m.position,
		Duration:        m.duration,
		CanSkip:         m.canSkip,
		Paused:          m.paused,
		ControlsVisible: m.controls,
		ErrorMessage:    m.errMessage,
		Markers:         m.schedule.Markers(),
		Ended:           m.closed,
	}

	if m.brk != nil {
		s.Slot = m.brk.slot()
		if b, ok := m.brk.(midRoll); ok {
			s.ResumeAt = b.resumeAt
		}
	}

	if m.ad != nil && m.mode == PlayingAd {
		s.SkipIn = max(m.ad.SkipAfter-m.elapsed, 0)
	}

	return s
}

func (m *Machine) triggerMidRoll(entry *ads.Entry) {
	resumeAt := m.position
	if err := m.deps.Engine.Pause(); err != nil {
		log.Warnf("pause for mid-roll: %v", err)
	}

	log.With(log.Fields{"video": m.video.ID, "at": resumeAt, "ad": entry.Ad.ID}).Info("mid-roll triggered")
	m.playBreak(midRoll{resumeAt: resumeAt}, entry.Ad)
}

func (m *Machine) finishMain() {
	if err := m.deps.Engine.Pause(); err != nil {
		log.Debugf("pause at end: %v", err)
	}

	if m.options.enabled(catalog.PostRoll) {
		m.selectBreak(postRoll{})
		return
	}
	m.end(Completed)
}

// selectBreak picks an ad for the break, running its continuation immediately when there is none.
func (m *Machine) selectBreak(b adBreak) {
	ad, ok := m.deps.Picker.Select(b.slot(), m.video).Get()
	if !ok {
		b.complete(m)
		return
	}
	m.playBreak(b, ad)
}

func (m *Machine) playBreak(b adBreak, ad *catalog.Advertisement) {
	m.mode = Loading
	m.brk = b
	m.ad = ad
	m.resetAd()
	m.position = 0
	m.duration = ad.Duration
	m.load(ad.Source, ad.Title)
}

func (m *Machine) enterAd() {
	m.mode = PlayingAd
	m.resetAd()
	m.canSkip = m.ad.SkipAfter == 0
	m.position = 0
	m.duration = m.ad.Duration
	m.paused = false

	if err := m.deps.Engine.Play(); err != nil {
		log.Warnf("start ad: %v", err)
	}
	m.emit()
}

func (m *Machine) finishAd() {
	b := m.brk
	m.brk = nil
	m.ad = nil
	m.resetAd()
	b.complete(m)
}

func (m *Machine) resetAd() {
	m.elapsed = 0
	m.canSkip = false
}

func (m *Machine) loadMain(resumeAt int) {
	m.mode = Loading
	m.brk = nil
	m.ad = nil
	m.resumeAt = resumeAt
	m.position = resumeAt
	m.duration = m.video.Duration
	m.errMessage = ""
	m.load(m.video.Source, m.video.Title)
}

func (m *Machine) enterMain() {
	target := m.resumeAt
	if !m.entered {
		target = 0
		m.entered = true

		if marker, ok := m.deps.Engine.(player.Marker); ok && len(m.schedule) > 0 {
			if err := marker.SetMarkers(m.schedule.Markers()); err != nil {
				log.Debugf("set markers: %v", err)
			}
		}
	}

	if err := m.deps.Engine.Seek(target); err != nil {
		log.Warnf("seek to %d: %v", target, err)
	}
	if err := m.deps.Engine.Play(); err != nil {
		log.Warnf("start playback: %v", err)
	}

	m.mode = PlayingMain
	m.position = target
	m.duration = m.video.Duration
	m.paused = false
	m.emit()
}

func (m *Machine) load(locator, title string) {
	m.token++
	m.emit()
	m.deps.Load(m.token, locator, title)
}

func (m *Machine) end(reason EndReason) {
	if m.closed {
		return
	}

	m.closed = true
	m.token++

	if err := m.deps.Engine.Pause(); err != nil {
		log.Debugf("pause on end: %v", err)
	}
	log.With(log.Fields{"video": m.video.ID, "reason": reason}).Info("session ended")

	m.emit()
	m.deps.Host.Ended(reason)
}

func (m *Machine) emit() {
	m.deps.Host.Changed(m.Snapshot())
}
