package light

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/breathe/colortemp"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

type message struct {
	topic    string
	payload  []byte
	retained bool
}

type fakePublisher struct {
	err  error
	sent []message
}

func (p *fakePublisher) Publish(
	topic string,
	_ byte,
	retained bool,
	payload []byte,
) error {
	if p.err != nil {
		return p.err
	}

	p.sent = append(p.sent, message{topic, payload, retained})

	return nil
}

func (p *fakePublisher) colors(t *testing.T) []string {
	t.Helper()

	out := make([]string, 0, len(p.sent))

	for _, m := range p.sent {
		var c Color

		require.NoError(t, json.Unmarshal(m.payload, &c))

		out = append(out, c.Hex)
	}

	return out
}

var (
	warm = colortemp.MustParseHex("#e48737")
	cool = colortemp.MustParseHex("#9ea9d7")
)

func TestRateLimiter(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(clock.now)

	assert.True(t, rl.Allow("lamp", time.Second))
	assert.False(t, rl.Allow("lamp", time.Second))
	assert.True(t, rl.Allow("desk", time.Second))

	clock.t = clock.t.Add(999 * time.Millisecond)
	assert.False(t, rl.Allow("lamp", time.Second))

	clock.t = clock.t.Add(time.Millisecond)
	assert.True(t, rl.Allow("lamp", time.Second))

	rl.Record("lamp")
	clock.t = clock.t.Add(250 * time.Millisecond)

	since, ok := rl.SinceLast("lamp")
	assert.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, since)

	_, ok = rl.SinceLast("hall")
	assert.False(t, ok)
}

func TestMQTTSinkLimitsUpdates(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	pub := &fakePublisher{}

	sink := NewMQTT(
		pub,
		"home/lamp/set",
		100*time.Millisecond,
		NewRateLimiter(clock.now),
		nil,
	)

	sink.SetColor(warm)
	sink.SetColor(cool) // too soon

	clock.t = clock.t.Add(100 * time.Millisecond)
	sink.SetColor(warm) // unchanged

	clock.t = clock.t.Add(100 * time.Millisecond)
	sink.SetColor(cool)

	sink.SetColor(colortemp.Black) // never limited
	sink.SetColor(colortemp.Black) // unchanged

	assert.Equal(t, []string{"#e48737", "#9ea9d7", "#000000"}, pub.colors(t))

	for _, m := range pub.sent {
		assert.Equal(t, "home/lamp/set", m.topic)
		assert.True(t, m.retained)
	}
}

func TestMQTTSinkLogsPublishInterval(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	pub := &fakePublisher{}

	var buf bytes.Buffer

	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	sink := NewMQTT(pub, "lamp", 0, NewRateLimiter(clock.now), logger)

	sink.SetColor(warm)

	clock.t = clock.t.Add(300 * time.Millisecond)
	sink.SetColor(cool)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any

	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "light published", first["msg"])
	assert.NotContains(t, first, "since_last")

	assert.Equal(t, "#9ea9d7", second["color"])
	assert.InDelta(t, float64(300*time.Millisecond), second["since_last"], 0)
}

func TestMQTTSinkRetriesAfterFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("offline")}
	sink := NewMQTT(pub, "lamp", 0, nil, nil)

	sink.SetColor(warm)
	assert.Empty(t, pub.sent)

	pub.err = nil
	sink.SetColor(warm)
	assert.Equal(t, []string{"#e48737"}, pub.colors(t))
}

func TestNewColor(t *testing.T) {
	c := NewColor(colortemp.KelvinToRGB(2700))
	assert.Equal(t, "ON", c.State)
	assert.Equal(t, "#ffa757", c.Hex)
	assert.InDelta(t, 2700, c.Kelvin, 100)

	off := NewColor(colortemp.Black)
	assert.Equal(t, "OFF", off.State)
	assert.Equal(t, RGBField{}, off.Color)

	b, err := json.Marshal(NewColor(warm))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"color":{"r":228,"g":135,"b":55}`)
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv("BREATHE_MQTT_USER", "lamp")
	t.Setenv("BREATHE_MQTT_PASSWORD", "s3cret")
	t.Setenv("BREATHE_MQTT_CLIENT_ID", "bedroom")

	c, err := CredentialsFromEnv()
	require.NoError(t, err)

	assert.Equal(t, Credentials{
		User:     "lamp",
		Password: "s3cret",
		ClientID: "bedroom",
	}, c)
}

type recorder struct {
	got []colortemp.RGB
}

func (r *recorder) SetColor(c colortemp.RGB) { r.got = append(r.got, c) }

func TestMulti(t *testing.T) {
	a, b := &recorder{}, &recorder{}

	Multi{a, b}.SetColor(warm)

	assert.Equal(t, []colortemp.RGB{warm}, a.got)
	assert.Equal(t, []colortemp.RGB{warm}, b.got)
}

func TestSwatch(t *testing.T) {
	var s Swatch

	assert.Equal(t, colortemp.Black, s.Color())

	s.SetColor(cool)
	assert.Equal(t, cool, s.Color())

	out := s.Render(6, 3)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 3)

	for _, l := range lines {
		assert.Equal(t, 6, lipgloss.Width(l))
	}
}
