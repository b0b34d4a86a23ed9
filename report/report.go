// Package report prints user-facing messages to the terminal
package report

import "github.com/pterm/pterm"

func Info(format string, args ...any) {
	pterm.Info.Printfln(format, args...)
}

func Success(format string, args ...any) {
	pterm.Success.Printfln(format, args...)
}

func Error(err error) {
	pterm.Error.Println(err)
}
