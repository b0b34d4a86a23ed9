package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/breathe/breath"
	"github.com/ayoisaiah/breathe/playback"
)

func (m *Model) sessionView() string {
	var s strings.Builder

	if m.swatch != nil {
		s.WriteString(m.swatch.Render(m.width, swatchHeight))
		s.WriteString("\n\n")
	}

	guide := playback.Guide(m.state)
	if guide == "" {
		guide = "Settle in"
	}

	s.WriteString(m.style.Main.SetString(guide).String())

	if m.state.Paused {
		s.WriteString(" " + m.style.Secondary.SetString("[Paused]").String())
	}

	s.WriteString(
		m.style.Hint.SetString(
			fmt.Sprintf("  %.1f breaths/min", m.state.BreathsPerMinute),
		).String(),
	)

	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(m.breathProgress()))
	s.WriteString("\n\n")
	s.WriteString(m.style.Hint.SetString(m.status.Running).String())
	s.WriteString("\n")
	s.WriteString(m.style.Hint.SetString("Light: " + m.status.Light).String())
	s.WriteString("\n")
	s.WriteString(m.style.Hint.SetString("Sound: " + m.status.Sound).String())

	if m.err != nil {
		s.WriteString("\n\n")
		s.WriteString(m.style.Secondary.SetString(m.err.Error()).String())
	}

	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.faster,
		defaultKeymap.slower,
		defaultKeymap.quit,
	}))

	return s.String()
}

// breathProgress rises while inhaling and falls while exhaling. It is empty
// until the breathing phase.
func (m *Model) breathProgress() float64 {
	if m.state.Phase != breath.Breathing {
		return 0
	}

	return m.state.Display
}

func (m *Model) View() string {
	if !m.state.Running {
		return ""
	}

	return m.style.Base.Render(m.sessionView())
}
