package ui

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Mode is the value of --ui and --color: auto, on or off.
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeOn   Mode = "on"
	ModeOff  Mode = "off"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModeOn, ModeOff:
		return Mode(s), nil
	case "":
		return ModeAuto, nil
	}
	return ModeAuto, fmt.Errorf("invalid mode %q (expected auto, on or off)", s)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Enabled resolves mode against f: auto means "f is a terminal".
func (m Mode) Enabled(f *os.File) bool {
	switch m {
	case ModeOn:
		return true
	case ModeOff:
		return false
	}
	return IsTerminal(f)
}
