// Package light drives the session light: a swatch rendered in the
// terminal, a networked lamp reached over MQTT, or both.
package light

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/breathe/colortemp"
)

// Sink receives the light color of every frame.
type Sink interface {
	SetColor(c colortemp.RGB)
}

// Multi fans a color out to several sinks in order.
type Multi []Sink

func (m Multi) SetColor(c colortemp.RGB) {
	for _, s := range m {
		s.SetColor(c)
	}
}

// Swatch keeps the latest color for the terminal to draw.
type Swatch struct {
	c  colortemp.RGB
	mu sync.RWMutex
}

func (s *Swatch) SetColor(c colortemp.RGB) {
	s.mu.Lock()
	s.c = c
	s.mu.Unlock()
}

func (s *Swatch) Color() colortemp.RGB {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.c
}

// Render draws the color as a block of width by height cells.
func (s *Swatch) Render(width, height int) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(s.Color().Hex())).
		Width(width).
		Height(height).
		Render("")
}
