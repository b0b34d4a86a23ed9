package playback

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/breathe/breath"
	"github.com/ayoisaiah/breathe/colortemp"
)

type fakeTime struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeTime) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.t
}

func (f *fakeTime) advance(d time.Duration) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.t = f.t.Add(d)

	return f.t
}

type scheduled struct {
	fn        func(time.Time)
	cancelled bool
	ran       bool
}

// manualScheduler runs callbacks only when the test asks it to.
type manualScheduler struct {
	frames []*scheduled
	every  []*scheduled
}

func (m *manualScheduler) AfterFrame(fn func(time.Time)) CancelFunc {
	s := &scheduled{fn: fn}
	m.frames = append(m.frames, s)

	return func() { s.cancelled = true }
}

func (m *manualScheduler) Every(_ time.Duration, fn func(time.Time)) CancelFunc {
	s := &scheduled{fn: fn}
	m.every = append(m.every, s)

	return func() { s.cancelled = true }
}

func (m *manualScheduler) pendingFrames() int {
	n := 0

	for _, s := range m.frames {
		if !s.cancelled && !s.ran {
			n++
		}
	}

	return n
}

func (m *manualScheduler) activeTimers() int {
	n := 0

	for _, s := range m.every {
		if !s.cancelled {
			n++
		}
	}

	return n
}

// frame runs every frame callback pending at the time of the call.
func (m *manualScheduler) frame(now time.Time) {
	pending := append([]*scheduled(nil), m.frames...)

	for _, s := range pending {
		if s.cancelled || s.ran {
			continue
		}

		s.ran = true
		s.fn(now)
	}
}

func (m *manualScheduler) second(now time.Time) {
	active := append([]*scheduled(nil), m.every...)

	for _, s := range active {
		if !s.cancelled {
			s.fn(now)
		}
	}
}

type fakeAudio struct {
	initErr error
	loadErr error
	gains   map[Channel]float64
	loaded  map[Channel]Resource
	pan     float64
	inits   int
	pauses  int
	resumes int
	stops   int
	paused  bool
}

func newFakeAudio() *fakeAudio {
	return &fakeAudio{
		gains:  make(map[Channel]float64),
		loaded: make(map[Channel]Resource),
	}
}

func (a *fakeAudio) Init() error {
	a.inits++
	return a.initErr
}

func (a *fakeAudio) LoadAndPlay(ch Channel, r Resource) error {
	if a.loadErr != nil {
		return a.loadErr
	}

	a.loaded[ch] = r

	return nil
}

func (a *fakeAudio) SetGain(ch Channel, v float64) { a.gains[ch] = v }

func (a *fakeAudio) SetPan(v float64) { a.pan = v }

func (a *fakeAudio) Pause() {
	a.pauses++
	a.paused = true
}

func (a *fakeAudio) Resume() {
	a.resumes++
	a.paused = false
}

func (a *fakeAudio) Stop() {
	a.stops++
	a.loaded = make(map[Channel]Resource)
}

type fakeLight struct {
	colors []colortemp.RGB
}

func (l *fakeLight) SetColor(c colortemp.RGB) {
	l.colors = append(l.colors, c)
}

func (l *fakeLight) last() colortemp.RGB {
	if len(l.colors) == 0 {
		return colortemp.Black
	}

	return l.colors[len(l.colors)-1]
}

type fakeResolver map[string]Resolved

func (r fakeResolver) ResolveSoundscape(id string) (Resolved, error) {
	res, ok := r[id]
	if !ok {
		return Resolved{}, errors.New("not found")
	}

	return res, nil
}

var resolver = fakeResolver{
	"ocean": {
		Primary:   Resource{Name: "sea", Path: "/tmp/sea.wav"},
		Secondary: &Resource{Name: "rain", Path: "/tmp/rain.ogg"},
	},
	"forest": {
		Primary: Resource{Name: "birds", Path: "/tmp/birds.mp3"},
	},
}

type harness struct {
	clock   *fakeTime
	sched   *manualScheduler
	audio   *fakeAudio
	light   *fakeLight
	ctrl    *Controller
	stopped []Summary
}

func newHarness(opts ...Option) *harness {
	h := &harness{
		clock: &fakeTime{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
		sched: &manualScheduler{},
		audio: newFakeAudio(),
		light: &fakeLight{},
	}

	opts = append([]Option{
		WithScheduler(h.sched),
		WithClock(h.clock.now),
		WithOnStop(func(s Summary) {
			h.stopped = append(h.stopped, s)
		}),
	}, opts...)

	h.ctrl = New(h.audio, h.light, resolver, opts...)

	return h
}

// step advances the clock by d and runs the pending frame.
func (h *harness) step(d time.Duration) {
	h.sched.frame(h.clock.advance(d))
}

// seconds advances the clock one second at a time, firing the status timer
// and a frame each time.
func (h *harness) seconds(n int) {
	for range n {
		now := h.clock.advance(time.Second)
		h.sched.second(now)
		h.sched.frame(now)
	}
}

func sessionConfig() breath.Config {
	return breath.Config{
		BreathsPerMinute: 7.5, // 4s half-cycle
		DefaultColor:     colortemp.MustParseHex("#c19887"),
		WarmColor:        colortemp.MustParseHex("#e48737"),
		CoolColor:        colortemp.MustParseHex("#9ea9d7"),
		PrimaryVolume:    breath.Volume{Default: 0.3, Min: 0, Max: 0.8},
		SecondaryVolume:  0.5,
		SecondaryEnabled: true,
		PanningPeriod:    10 * time.Second,
	}
}

func TestStartAppliesFirstFrame(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.ctrl.Start(sessionConfig(), "ocean"))

	s := h.ctrl.State()
	assert.True(t, s.Running)
	assert.False(t, s.Paused)
	assert.Equal(t, breath.Syncing, s.Phase)
	assert.Equal(t, "ocean", s.Soundscape)

	assert.Equal(t, 1, h.audio.inits)
	assert.Equal(t, "sea", h.audio.loaded[Primary].Name)
	assert.Equal(t, "rain", h.audio.loaded[Secondary].Name)
	assert.InDelta(t, 0.3, h.audio.gains[Primary], 1e-9)
	assert.InDelta(t, 0.5, h.audio.gains[Secondary], 1e-9)
	assert.Equal(t, sessionConfig().DefaultColor, h.light.last())

	assert.Equal(t, 1, h.sched.pendingFrames())
	assert.Equal(t, 1, h.sched.activeTimers())
}

func TestStartSkipsDisabledSecondary(t *testing.T) {
	h := newHarness()

	cfg := sessionConfig()
	cfg.SecondaryEnabled = false

	require.NoError(t, h.ctrl.Start(cfg, "ocean"))

	_, ok := h.audio.loaded[Secondary]
	assert.False(t, ok)
	assert.Zero(t, h.audio.gains[Secondary])
}

func TestStartRequiresIdle(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.ctrl.Start(sessionConfig(), "ocean"))

	err := h.ctrl.Start(sessionConfig(), "forest")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, "ocean", h.ctrl.State().Soundscape)
	assert.Equal(t, 1, h.audio.inits)
}

func TestSessionReachesBreathingAfterSync(t *testing.T) {
	h := newHarness()

	cfg := sessionConfig()
	cfg.BreathsPerMinute = 6

	require.NoError(t, h.ctrl.Start(cfg, "forest"))
	assert.Equal(t, breath.Syncing, h.ctrl.State().Phase)

	h.step(1999 * time.Millisecond)
	assert.Equal(t, breath.Syncing, h.ctrl.State().Phase)

	h.step(time.Millisecond)
	assert.Equal(t, breath.Breathing, h.ctrl.State().Phase)
	assert.Equal(t, breath.Inhale, h.ctrl.State().SubPhase)
	assert.Equal(t, sessionConfig().WarmColor, h.light.last())
}

func TestPauseResumeContinuesFromFrozenPoint(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.ctrl.Start(sessionConfig(), "ocean"))

	h.step(2 * time.Second)
	h.step(1600 * time.Millisecond)

	before := h.ctrl.State()
	require.Equal(t, breath.Breathing, before.Phase)
	require.Equal(t, breath.Inhale, before.SubPhase)
	require.InDelta(t, 0.4, before.Progress, 1e-9)

	require.NoError(t, h.ctrl.Pause())
	assert.True(t, h.audio.paused)
	assert.Zero(t, h.sched.pendingFrames())

	h.clock.advance(time.Minute)
	h.sched.frame(h.clock.now())

	paused := h.ctrl.State()
	assert.True(t, paused.Paused)
	assert.Equal(t, before.Phase, paused.Phase)
	assert.Equal(t, before.SubPhase, paused.SubPhase)
	assert.Equal(t, before.Progress, paused.Progress)
	assert.Equal(t, before.Elapsed, paused.Elapsed)

	require.NoError(t, h.ctrl.Resume())
	assert.False(t, h.audio.paused)
	assert.Equal(t, 1, h.sched.pendingFrames())

	h.step(16 * time.Millisecond)

	after := h.ctrl.State()
	assert.Equal(t, breath.Inhale, after.SubPhase)
	assert.GreaterOrEqual(t, after.Progress, 0.4)
	assert.InDelta(t, 0.404, after.Progress, 1e-9)
}

func TestPauseIsIdempotent(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.ctrl.Start(sessionConfig(), "ocean"))
	h.step(3 * time.Second)

	require.NoError(t, h.ctrl.Pause())
	once := h.ctrl.State()

	require.NoError(t, h.ctrl.Pause())
	twice := h.ctrl.State()

	assert.Equal(t, once, twice)
	assert.Equal(t, 1, h.audio.pauses)
	assert.Zero(t, h.sched.pendingFrames())
}

func TestResumeWhenNotPausedIsNoop(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.ctrl.Start(sessionConfig(), "ocean"))

	assert.NoError(t, h.ctrl.Resume())
	assert.Zero(t, h.audio.resumes)
	assert.Equal(t, 1, h.sched.pendingFrames())
}

func TestStaleFrameIsDropped(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.ctrl.Start(sessionConfig(), "ocean"))

	stale := h.sched.frames[len(h.sched.frames)-1]

	require.NoError(t, h.ctrl.Pause())
	require.NoError(t, h.ctrl.Resume())
	require.Equal(t, 1, h.sched.pendingFrames())

	// a callback that was already firing when it got cancelled
	stale.fn(h.clock.advance(time.Second))

	assert.Equal(t, 1, h.sched.pendingFrames())
}

func TestStopFromAnyPhase(t *testing.T) {
	steps := map[string]time.Duration{
		"fade-in":   500 * time.Millisecond,
		"syncing":   2500 * time.Millisecond,
		"breathing": 10 * time.Second,
	}

	for name, d := range steps {
		t.Run(name, func(t *testing.T) {
			h := newHarness()

			cfg := sessionConfig()
			cfg.LightFade = time.Second

			require.NoError(t, h.ctrl.Start(cfg, "ocean"))
			h.step(d)

			h.ctrl.Stop()

			s := h.ctrl.State()
			assert.Equal(t, breath.Idle, s.Phase)
			assert.False(t, s.Running)
			assert.Equal(t, colortemp.Black, h.light.last())
			assert.Equal(t, 1, h.audio.stops)
			assert.Zero(t, h.sched.pendingFrames())
			assert.Zero(t, h.sched.activeTimers())

			assert.ErrorIs(t, h.ctrl.Pause(), ErrInvalidState)
			assert.ErrorIs(t, h.ctrl.Resume(), ErrInvalidState)

			require.Len(t, h.stopped, 1)
			assert.Equal(t, d, h.stopped[0].Active)
			assert.False(t, h.stopped[0].Completed)
		})
	}
}

func TestStopWhenIdle(t *testing.T) {
	h := newHarness()

	h.ctrl.Stop()
	h.ctrl.Stop()

	assert.Equal(t, colortemp.Black, h.light.last())
	assert.Empty(t, h.stopped)
	assert.ErrorIs(t, h.ctrl.Pause(), ErrInvalidState)
}

func TestStartCanFollowStop(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.ctrl.Start(sessionConfig(), "ocean"))
	h.seconds(5)
	h.ctrl.Stop()

	require.NoError(t, h.ctrl.Start(sessionConfig(), "forest"))

	s := h.ctrl.State()
	assert.Equal(t, breath.Syncing, s.Phase)
	assert.Zero(t, s.ElapsedSeconds)
	assert.Zero(t, s.Elapsed)
	assert.Equal(t, 2, h.audio.inits)
}

func TestStartFailuresLeaveIdle(t *testing.T) {
	invalid := sessionConfig()
	invalid.BreathsPerMinute = 0

	cases := []struct {
		name       string
		cfg        breath.Config
		soundscape string
		initErr    error
		loadErr    error
		want       error
	}{
		{
			name:       "invalid config",
			cfg:        invalid,
			soundscape: "ocean",
			want:       ErrConfigValidation,
		},
		{
			name:       "unknown soundscape",
			cfg:        sessionConfig(),
			soundscape: "desert",
			want:       ErrConfigValidation,
		},
		{
			name:       "audio init",
			cfg:        sessionConfig(),
			soundscape: "ocean",
			initErr:    errors.New("no device"),
			want:       ErrSinkUnavailable,
		},
		{
			name:       "track load",
			cfg:        sessionConfig(),
			soundscape: "ocean",
			loadErr:    errors.New("corrupt file"),
			want:       ErrSinkUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness()
			h.audio.initErr = tc.initErr
			h.audio.loadErr = tc.loadErr

			err := h.ctrl.Start(tc.cfg, tc.soundscape)
			require.ErrorIs(t, err, tc.want)

			assert.False(t, h.ctrl.State().Running)
			assert.Equal(t, breath.Idle, h.ctrl.State().Phase)
			assert.Empty(t, h.sched.frames)
			assert.Empty(t, h.sched.every)
			assert.Empty(t, h.audio.loaded)
			assert.ErrorIs(t, h.ctrl.Pause(), ErrInvalidState)
		})
	}
}

func TestStatusLabels(t *testing.T) {
	h := newHarness()

	cfg := sessionConfig()
	cfg.LightDelay = 5 * time.Second
	cfg.LightFade = 10 * time.Second
	cfg.SoundDelay = 10 * time.Second
	cfg.SoundFade = 10 * time.Second

	assert.Equal(t, Status{}, h.ctrl.Status())

	require.NoError(t, h.ctrl.Start(cfg, "ocean"))

	h.seconds(3)
	assert.Equal(t, Status{
		Running: "Running: 00:03",
		Light:   "fading in soon (2s left)",
		Sound:   "fading in soon (7s left)",
	}, h.ctrl.Status())

	h.seconds(4)
	assert.Equal(t, Status{
		Running: "Running: 00:07",
		Light:   "fading in (8s left)",
		Sound:   "fading in soon (3s left)",
	}, h.ctrl.Status())

	require.NoError(t, h.ctrl.Pause())
	h.seconds(10)
	assert.Equal(t, "Paused: 00:07", h.ctrl.Status().Running)

	require.NoError(t, h.ctrl.Resume())
	h.seconds(9)
	assert.Equal(t, Status{
		Running: "Running: 00:16",
		Light:   "waiting to sync",
		Sound:   "fading in (4s left)",
	}, h.ctrl.Status())

	h.seconds(5)
	assert.Equal(t, breath.Syncing, h.ctrl.State().Phase)
	assert.Equal(t, "syncing...", h.ctrl.Status().Light)
	assert.Equal(t, "syncing...", h.ctrl.Status().Sound)

	h.seconds(2)
	assert.Equal(t, breath.Breathing, h.ctrl.State().Phase)
	assert.Equal(t, "synced with breath", h.ctrl.Status().Light)
	assert.Equal(t, "synced with breath", h.ctrl.Status().Sound)
	assert.Equal(t, "Running: 00:23", h.ctrl.Status().Running)
}

func TestStatusTreatsNegativeWindowsAsZero(t *testing.T) {
	cfg := sessionConfig()
	cfg.LightDelay = -5 * time.Second
	cfg.LightFade = 10 * time.Second
	cfg.SoundDelay = 4 * time.Second
	cfg.SoundFade = -time.Second

	st := StatusOf(RunState{
		Phase:          breath.FadeIn,
		ElapsedSeconds: 2,
		Running:        true,
	}, cfg)

	assert.Equal(t, "fading in (8s left)", st.Light)
	assert.Equal(t, "fading in soon (2s left)", st.Sound)
}

func TestGuide(t *testing.T) {
	assert.Empty(t, Guide(RunState{Phase: breath.FadeIn, Running: true}))
	assert.Equal(t, "Get ready...", Guide(RunState{Phase: breath.Syncing}))
	assert.Equal(t, "Inhale", Guide(RunState{Phase: breath.Breathing}))
	assert.Equal(
		t,
		"Exhale",
		Guide(RunState{Phase: breath.Breathing, SubPhase: breath.Exhale}),
	)
}

func TestMaxDurationStopsSession(t *testing.T) {
	h := newHarness(WithMaxDuration(3 * time.Second))

	require.NoError(t, h.ctrl.Start(sessionConfig(), "forest"))

	h.seconds(2)
	assert.True(t, h.ctrl.State().Running)

	h.seconds(1)
	assert.False(t, h.ctrl.State().Running)
	assert.Zero(t, h.sched.activeTimers())

	require.Len(t, h.stopped, 1)
	assert.True(t, h.stopped[0].Completed)
	assert.Equal(t, 3*time.Second, h.stopped[0].Active)
	assert.Equal(t, "forest", h.stopped[0].Soundscape)
	assert.InDelta(t, 7.5, h.stopped[0].BreathsPerMinute, 1e-9)
}

func TestSetBreathsPerMinute(t *testing.T) {
	h := newHarness()

	assert.ErrorIs(t, h.ctrl.SetBreathsPerMinute(8), ErrInvalidState)

	require.NoError(t, h.ctrl.Start(sessionConfig(), "ocean"))
	h.step(2 * time.Second)
	h.step(2 * time.Second)
	require.InDelta(t, 0.5, h.ctrl.State().Progress, 1e-9)

	require.NoError(t, h.ctrl.SetBreathsPerMinute(15))
	assert.InDelta(t, 0.5, h.ctrl.State().Progress, 1e-9)
	assert.InDelta(t, 15, h.ctrl.State().BreathsPerMinute, 1e-9)

	h.step(500 * time.Millisecond)
	assert.InDelta(t, 0.75, h.ctrl.State().Progress, 1e-9)

	assert.ErrorIs(t, h.ctrl.SetBreathsPerMinute(-1), ErrConfigValidation)
	assert.InDelta(t, 15, h.ctrl.Config().BreathsPerMinute, 1e-9)
}

func TestPanningReachesAudioSink(t *testing.T) {
	h := newHarness()

	cfg := sessionConfig()
	cfg.PanningEnabled = true
	cfg.PanningPeriod = 4 * time.Second

	require.NoError(t, h.ctrl.Start(cfg, "ocean"))
	assert.Zero(t, h.audio.pan)

	// the harness clock starts on a multiple of the period, so 5s in is a
	// quarter period
	h.step(2 * time.Second)
	h.step(3 * time.Second)

	assert.Equal(t, breath.Breathing, h.ctrl.State().Phase)
	assert.InDelta(t, 1, h.audio.pan, 1e-9)
	assert.InDelta(t, 1, h.ctrl.Frame().Pan, 1e-9)
}
