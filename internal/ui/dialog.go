// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package ui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/gridform/gridform/internal/validate"
)

// DialogCallback is called when dialog is dismissed.
type DialogCallback func()

// Dialog represents a generic modal dialog base.
type Dialog struct {
	*tview.Modal
	pages  *Pages
	pageID string
	title  string
	msg    string
	onDone DialogCallback
}

// NewDialog creates a new dialog.
func NewDialog(pages *Pages, pageID string) *Dialog {
	d := &Dialog{
		Modal:  tview.NewModal(),
		pages:  pages,
		pageID: pageID,
	}

	d.SetBackgroundColor(tcell.ColorDefault)
	d.SetTextColor(tcell.ColorWhite)

	return d
}

// SetTitle sets the dialog title, shown above the message.
func (d *Dialog) SetTitle(title string) *Dialog {
	d.title = title
	d.Modal.SetText(d.Text())
	return d
}

// SetMessage sets the dialog message.
func (d *Dialog) SetMessage(msg string) *Dialog {
	d.msg = msg
	d.Modal.SetText(d.Text())
	return d
}

// Text returns the full dialog text.
func (d *Dialog) Text() string {
	if d.title == "" {
		return d.msg
	}
	return d.title + "\n\n" + d.msg
}

// SetButtons configures dialog buttons.
func (d *Dialog) SetButtons(labels []string) *Dialog {
	d.AddButtons(labels)
	return d
}

// SetDoneCallback sets the callback for when dialog closes.
func (d *Dialog) SetDoneCallback(fn DialogCallback) *Dialog {
	d.onDone = fn
	return d
}

// SetButtonHandler sets the button click handler.
func (d *Dialog) SetButtonHandler(handler func(int, string)) *Dialog {
	d.SetDoneFunc(func(buttonIndex int, buttonLabel string) {
		d.Dismiss()
		if handler != nil {
			handler(buttonIndex, buttonLabel)
		}
	})
	return d
}

// Show displays the dialog as a modal overlay.
func (d *Dialog) Show() {
	if d.pages != nil {
		d.pages.ShowOverlay(d.pageID, d)
	}
}

// Dismiss removes the dialog from display.
func (d *Dialog) Dismiss() {
	if d.pages != nil {
		d.pages.HideOverlay(d.pageID)
	}
	if d.onDone != nil {
		d.onDone()
	}
}

// SetColors configures dialog colors.
func (d *Dialog) SetColors(text, btnBg, btnText tcell.Color) *Dialog {
	d.SetTextColor(text)
	d.SetButtonBackgroundColor(btnBg)
	d.SetButtonTextColor(btnText)
	return d
}

// ErrorDialog creates a styled error dialog.
func ErrorDialog(pages *Pages, title, message string) *Dialog {
	return NewDialog(pages, "error-dialog").
		SetTitle(title).
		SetMessage(message).
		SetButtons([]string{"OK"}).
		SetColors(tcell.ColorRed, tcell.ColorRed, tcell.ColorWhite).
		SetButtonHandler(func(_ int, _ string) {})
}

// ErrorsDialog lists validation failures, at most limit of them.
func ErrorsDialog(pages *Pages, errs validate.Errors, limit int) *Dialog {
	var b strings.Builder
	for i, e := range errs {
		if i == limit {
			fmt.Fprintf(&b, "... and %d more", len(errs)-limit)
			break
		}
		fmt.Fprintf(&b, "%s\n", e.Message)
	}

	return ErrorDialog(pages, "Invalid rows", strings.TrimSpace(b.String()))
}
