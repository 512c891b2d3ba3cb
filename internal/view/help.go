// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package view

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/gridform/gridform/internal/config"
)

// HelpBind represents a single keybinding.
type HelpBind struct {
	Key  string
	Desc string
}

var actionTitles = map[config.Action]string{
	config.ActionAppend:  "Append",
	config.ActionRemove:  "Remove",
	config.ActionEdit:    "Edit Cell",
	config.ActionEditRow: "Edit Row",
	config.ActionSort:    "Sort",
	config.ActionSubmit:  "Submit",
	config.ActionReload:  "Reload",
	config.ActionDiff:    "Diff",
}

// Help displays a full-screen help view with keybindings.
type Help struct {
	*tview.Table
	keys    *config.KeyBindings
	closeFn func()
}

// NewHelp creates a new help view.
func NewHelp(keys *config.KeyBindings) *Help {
	h := &Help{
		Table: tview.NewTable(),
		keys:  keys,
	}
	h.build()
	return h
}

// SetCloseFn sets the callback when help is closed.
func (h *Help) SetCloseFn(fn func()) {
	h.closeFn = fn
}

func (h *Help) close() {
	if h.closeFn != nil {
		h.closeFn()
	}
}

// build constructs the help UI.
func (h *Help) build() {
	h.SetBorder(true)
	h.SetTitle(" Help ")
	h.SetTitleAlign(tview.AlignCenter)
	h.SetBorderColor(tcell.ColorYellow)
	h.SetBackgroundColor(tcell.ColorDefault)
	h.SetSelectable(false, false)

	h.populateHelp()

	h.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		switch evt.Key() {
		case tcell.KeyEsc, tcell.KeyEnter:
			h.close()
			return nil
		}
		if evt.Rune() == '?' || evt.Rune() == 'q' {
			h.close()
			return nil
		}
		return evt
	})
}

// tableBinds lists the configured table actions.
func (h *Help) tableBinds() []HelpBind {
	bb := make([]HelpBind, 0, len(actionTitles))
	for _, a := range h.keys.Actions() {
		title, ok := actionTitles[a]
		if !ok {
			continue
		}
		bb = append(bb, HelpBind{Key: "<" + h.keys.Get(a) + ">", Desc: title})
	}
	return bb
}

// populateHelp fills the help table with keybindings in a 4-column layout.
func (h *Help) populateHelp() {
	commands := []HelpBind{
		{":append", "Append"},
		{":submit", "Submit"},
		{":reload", "Reload"},
		{":diff", "Diff"},
		{":sort <col>", "Sort"},
		{":quit", "Quit"},
	}

	general := []HelpBind{
		{"<:>", "Command"},
		{"</>", "Filter"},
		{"<?>", "Help"},
		{"<esc>", "Back"},
		{"<q>", "Quit"},
	}

	navigation := []HelpBind{
		{"<j>", "Down"},
		{"<k>", "Up"},
		{"<g>", "Top"},
		{"<G>", "Bottom"},
		{"<h/l>", "Column"},
	}

	columns := [][]HelpBind{h.tableBinds(), commands, general, navigation}
	headers := []string{"TABLE", "COMMANDS", "GENERAL", "NAVIGATION"}

	maxRows := 0
	for _, col := range columns {
		maxRows = max(maxRows, len(col))
	}

	// Each logical column is key, desc and a spacer.
	colWidth := 3
	for colIdx, col := range columns {
		baseCol := colIdx * colWidth

		h.SetCell(0, baseCol, tview.NewTableCell(headers[colIdx]).
			SetTextColor(tcell.ColorAqua).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))

		for rowIdx, bind := range col {
			row := rowIdx + 1
			h.SetCell(row, baseCol, tview.NewTableCell(tview.Escape(bind.Key)).
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false))
			h.SetCell(row, baseCol+1, tview.NewTableCell(bind.Desc).
				SetTextColor(tcell.ColorWhite).
				SetSelectable(false).
				SetExpansion(1))
		}

		if colIdx < len(columns)-1 {
			for row := 0; row <= maxRows; row++ {
				h.SetCell(row, baseCol+2, tview.NewTableCell("").
					SetSelectable(false).
					SetExpansion(1))
			}
		}
	}

	h.SetCell(maxRows+2, 0, tview.NewTableCell("<esc> to close").
		SetTextColor(tcell.ColorGray).
		SetSelectable(false))
}
