package playback

import "github.com/ayoisaiah/breathe/colortemp"

// Channel identifies one of the two audio tracks of a session.
type Channel int

const (
	Primary Channel = iota
	Secondary
)

func (c Channel) String() string {
	if c == Secondary {
		return "secondary"
	}

	return "primary"
}

// Resource is a playable audio file.
type Resource struct {
	Name string
	Path string
}

// Resolved is the pair of tracks a soundscape maps to. Secondary is nil
// when the soundscape has a single track.
type Resolved struct {
	Secondary *Resource
	Primary   Resource
}

// Resolver maps a soundscape identifier to its tracks.
type Resolver interface {
	ResolveSoundscape(id string) (Resolved, error)
}

// AudioSink plays the session tracks. Init must be safe to call more than
// once. Gain and pan writes never block.
type AudioSink interface {
	Init() error
	LoadAndPlay(ch Channel, r Resource) error
	SetGain(ch Channel, v float64)
	SetPan(v float64)
	Pause()
	Resume()
	Stop()
}

// LightSink displays the session light.
type LightSink interface {
	SetColor(c colortemp.RGB)
}
