package model1

import "github.com/gdamore/tcell/v2"

var (
	// ModColor row modified color
	ModColor tcell.Color = tcell.ColorBlue

	// AddColor row added color
	AddColor tcell.Color = tcell.ColorRed

	// PendingColor row with an in-flight deletion
	PendingColor tcell.Color = tcell.ColorDarkCyan

	// ErrColor row validation error color
	ErrColor tcell.Color = tcell.ColorRed

	// StdColor row default color
	StdColor tcell.Color = tcell.ColorWhite
)

// StatusLabels maps a status to its display label. Unchanged rows carry no
// label.
var StatusLabels = map[Status]string{
	StatusUnchanged: "",
	StatusCreated:   "new",
	StatusModified:  "modified",
}

// StatusLabel returns the display label for a status.
func StatusLabel(s Status) string {
	return StatusLabels[s]
}

// StatusColor returns the accent color for a status.
func StatusColor(s Status) tcell.Color {
	switch s {
	case StatusCreated:
		return AddColor
	case StatusModified:
		return ModColor
	default:
		return StdColor
	}
}

// DefaultColorer set the default table row colors
func DefaultColorer(_ Header, row *Row) tcell.Color {
	return StatusColor(row.Status)
}
