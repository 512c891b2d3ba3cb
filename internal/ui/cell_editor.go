// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const cellEditorPage = "cell-editor"

// CellEditor is an input overlay editing one cell.
type CellEditor struct {
	*tview.Flex

	input    *tview.InputField
	pages    *Pages
	onDone   func(string)
	onCancel func()
}

// NewCellEditor returns a new cell editor.
func NewCellEditor(pages *Pages) *CellEditor {
	e := &CellEditor{
		input: tview.NewInputField(),
		pages: pages,
	}
	e.input.SetBorder(true)
	e.input.SetBorderColor(tcell.ColorDarkCyan)
	e.input.SetFieldBackgroundColor(tcell.ColorDefault)
	e.input.SetBackgroundColor(tcell.ColorDefault)
	e.input.SetDoneFunc(e.done)

	e.Flex = tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(e.input, 3, 0, true).
			AddItem(nil, 0, 1, false), 0, 2, true).
		AddItem(nil, 0, 1, false)

	return e
}

// Input returns the underlying input field.
func (e *CellEditor) Input() *tview.InputField {
	return e.input
}

// Edit shows the editor with a value. done receives the new text on Enter;
// cancel runs on Esc.
func (e *CellEditor) Edit(title, value string, done func(string), cancel func()) {
	e.onDone, e.onCancel = done, cancel
	e.input.SetTitle(" " + title + " ")
	e.input.SetText(value)
	if e.pages != nil {
		e.pages.ShowOverlay(cellEditorPage, e)
	}
}

// Dismiss removes the editor.
func (e *CellEditor) Dismiss() {
	if e.pages != nil {
		e.pages.HideOverlay(cellEditorPage)
	}
}

func (e *CellEditor) done(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		e.Dismiss()
		if e.onDone != nil {
			e.onDone(e.input.GetText())
		}
	case tcell.KeyEsc:
		e.Dismiss()
		if e.onCancel != nil {
			e.onCancel()
		}
	}
}
