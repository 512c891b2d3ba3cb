// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package ui

// IndicatorMode represents the current input mode.
type IndicatorMode int

const (
	// ModeNormal is the default navigation mode.
	ModeNormal IndicatorMode = iota
	// ModeCommand is for entering commands (: prefix).
	ModeCommand
	// ModeFilter is for filtering rows (/ prefix).
	ModeFilter
)

// Mode indicators.
const (
	IndicatorNormal  = "▦"
	IndicatorCommand = "▦"
	IndicatorFilter  = "🔍"
)

func (m IndicatorMode) String() string {
	switch m {
	case ModeCommand:
		return "command"
	case ModeFilter:
		return "filter"
	default:
		return "normal"
	}
}

// prefix returns the icon and prompt char of a mode.
func (m IndicatorMode) prefix() (string, string) {
	switch m {
	case ModeCommand:
		return IndicatorCommand, ":"
	case ModeFilter:
		return IndicatorFilter, "/"
	default:
		return IndicatorNormal, ">"
	}
}
