// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package view

import (
	"context"

	"github.com/gridform/gridform/internal/ui"
)

// Prompter asks the user through modal dialogs and reports through the
// flash bar. Confirm blocks, so it must not run on the ui goroutine.
type Prompter struct {
	app     *App
	confirm *ui.Confirm
}

// NewPrompter returns a new prompter.
func NewPrompter(app *App) *Prompter {
	c := ui.NewConfirm(app.Content)
	c.SetDangerous(true)

	return &Prompter{app: app, confirm: c}
}

// Confirm shows a yes/no dialog and waits for the answer. A cancelled
// context counts as no.
func (p *Prompter) Confirm(ctx context.Context, msg string) bool {
	answer := make(chan bool, 1)
	p.app.QueueUpdateDraw(func() {
		p.confirm.Ask(msg, func(yes bool) {
			answer <- yes
			p.app.SetFocus(p.app.Content)
		})
		p.app.SetFocus(p.confirm)
	})

	select {
	case yes := <-answer:
		return yes
	case <-ctx.Done():
		p.app.QueueUpdateDraw(func() {
			p.confirm.Dismiss()
			p.app.SetFocus(p.app.Content)
		})
		return false
	}
}

// Notify flashes a message.
func (p *Prompter) Notify(_ context.Context, msg string) {
	p.app.Flash().Info(msg)
}
