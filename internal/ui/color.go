// Package ui holds the terminal colors and tables shared by the commands.
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme selects the light variant of every color.
var DarkTheme bool

func paint(dark, light pterm.Color, a any) string {
	if DarkTheme {
		return dark.Sprint(a)
	}

	return light.Sprint(a)
}

func Green(a any) string {
	return paint(pterm.FgLightGreen, pterm.FgGreen, a)
}

func Cyan(a any) string {
	return paint(pterm.FgLightCyan, pterm.FgCyan, a)
}

func Red(a any) string {
	return paint(pterm.FgLightRed, pterm.FgRed, a)
}

func Highlight(a any) string {
	return paint(pterm.FgLightWhite, pterm.FgBlack, a)
}

// Status renders good in green when ok, and bad in red otherwise.
func Status(ok bool, good, bad string) string {
	if ok {
		return Green(good)
	}

	return Red(bad)
}
