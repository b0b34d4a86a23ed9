// Package sound plays the session tracks through the system audio device.
// Each track loops forever and runs through its own gain stage; the primary
// track is also panned.
package sound

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/ayoisaiah/breathe/playback"
)

// SampleRate is the rate the device is opened at. Tracks recorded at other
// rates are resampled.
const SampleRate beep.SampleRate = 44100

const (
	bufferSize      = 10 // 1/10th of a second
	resampleQuality = 4
)

// device is the part of the beep speaker package the sink uses.
type device interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
	Suspend() error
	Resume() error
}

type systemDevice struct{}

func (systemDevice) Init(sr beep.SampleRate, n int) error { return speaker.Init(sr, n) }

func (systemDevice) Play(s ...beep.Streamer) { speaker.Play(s...) }

func (systemDevice) Clear() { speaker.Clear() }

func (systemDevice) Lock() { speaker.Lock() }

func (systemDevice) Unlock() { speaker.Unlock() }

func (systemDevice) Suspend() error { return speaker.Suspend() }

func (systemDevice) Resume() error { return speaker.Resume() }

type track struct {
	stream beep.StreamSeekCloser
	gain   *effects.Gain
	pan    *effects.Pan
}

// Speaker implements playback.AudioSink.
type Speaker struct {
	dev    device
	logger *slog.Logger
	tracks map[playback.Channel]*track
	gains  map[playback.Channel]float64
	pan    float64
	mu     sync.Mutex
	ready  bool
}

// NewSpeaker returns a sink for the system audio device. The device is
// opened on the first Init.
func NewSpeaker(logger *slog.Logger) *Speaker {
	return newSpeaker(systemDevice{}, logger)
}

func newSpeaker(dev device, logger *slog.Logger) *Speaker {
	if logger == nil {
		logger = slog.Default()
	}

	return &Speaker{
		dev:    dev,
		logger: logger,
		tracks: make(map[playback.Channel]*track),
		gains:  make(map[playback.Channel]float64),
	}
}

// Init opens the audio device. Later calls do nothing once it succeeded.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	err := s.dev.Init(SampleRate, SampleRate.N(time.Second/bufferSize))
	if err != nil {
		return errDeviceInit.Wrap(err)
	}

	s.ready = true

	return nil
}

// LoadAndPlay starts looping r on ch, replacing whatever played there. The
// track starts at the gain last set for ch.
func (s *Speaker) LoadAndPlay(ch playback.Channel, r playback.Resource) error {
	stream, format, err := decode(r.Path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeTrack(ch)

	var src beep.Streamer = beep.Loop(-1, stream)
	if format.SampleRate != SampleRate {
		src = beep.Resample(resampleQuality, format.SampleRate, SampleRate, src)
	}

	t := &track{
		stream: stream,
		gain:   &effects.Gain{Streamer: src, Gain: gainOffset(s.gains[ch])},
	}

	var out beep.Streamer = t.gain

	if ch == playback.Primary {
		t.pan = &effects.Pan{Streamer: t.gain, Pan: s.pan}
		out = t.pan
	}

	s.tracks[ch] = t
	s.dev.Play(out)

	s.logger.Debug(
		"track loaded",
		slog.String("channel", ch.String()),
		slog.String("name", r.Name),
		slog.Int("sample_rate", int(format.SampleRate)),
	)

	return nil
}

// SetGain sets the linear gain of ch, clamped to [0,1].
func (s *Speaker) SetGain(ch playback.Channel, v float64) {
	v = clamp(v, 0, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gains[ch] = v

	t, ok := s.tracks[ch]
	if !ok {
		return
	}

	s.dev.Lock()
	t.gain.Gain = gainOffset(v)
	s.dev.Unlock()
}

// SetPan moves the primary track between the left (-1) and right (1)
// channels.
func (s *Speaker) SetPan(v float64) {
	v = clamp(v, -1, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pan = v

	t, ok := s.tracks[playback.Primary]
	if !ok || t.pan == nil {
		return
	}

	s.dev.Lock()
	t.pan.Pan = v
	s.dev.Unlock()
}

func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return
	}

	if err := s.dev.Suspend(); err != nil {
		s.logger.Warn("unable to suspend audio", slog.Any("error", err))
	}
}

func (s *Speaker) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return
	}

	if err := s.dev.Resume(); err != nil {
		s.logger.Warn("unable to resume audio", slog.Any("error", err))
	}
}

// Stop halts playback and releases every track. The device stays open for
// the next session.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		s.dev.Clear()
		// a paused device would hold the next session silent
		_ = s.dev.Resume()
	}

	for ch := range s.tracks {
		s.closeTrack(ch)
	}

	clear(s.gains)
	s.pan = 0
}

// closeTrack must be called with s.mu held.
func (s *Speaker) closeTrack(ch playback.Channel) {
	t, ok := s.tracks[ch]
	if !ok {
		return
	}

	s.dev.Lock()
	t.gain.Gain = -1
	s.dev.Unlock()

	if err := t.stream.Close(); err != nil {
		s.logger.Warn("unable to close track", slog.Any("error", err))
	}

	delete(s.tracks, ch)
}

// gainOffset converts a linear gain to the offset effects.Gain expects.
func gainOffset(v float64) float64 {
	return v - 1
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
