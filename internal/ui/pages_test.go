// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package ui

import (
	"context"
	"testing"

	"github.com/derailed/tview"
	"github.com/stretchr/testify/assert"
)

type page struct {
	*tview.Box
	name    string
	started int
	stopped int
}

func newPage(n string) *page {
	return &page{Box: tview.NewBox(), name: n}
}

func (p *page) Name() string               { return p.name }
func (p *page) Init(context.Context) error { return nil }
func (p *page) Start()                     { p.started++ }
func (p *page) Stop()                      { p.stopped++ }
func (p *page) Hints() MenuHints           { return nil }

type pageRecorder struct {
	events []string
}

func (r *pageRecorder) PagePushed(c Component) {
	r.events = append(r.events, "+"+c.Name())
}

func (r *pageRecorder) PagePopped(old, top Component) {
	r.events = append(r.events, "-"+old.Name()+">"+top.Name())
}

func TestPagesStack(t *testing.T) {
	p, l := NewPages(), pageRecorder{}
	p1, p2 := newPage("grid"), newPage("diff")

	p.Push(p1)
	p.AddListener(&l)
	p.Push(p2)

	assert.Equal(t, []string{"grid", "diff"}, p.Flatten())
	assert.Equal(t, p2, p.Top())
	assert.Equal(t, 1, p1.stopped)

	c, ok := p.Pop()
	assert.True(t, ok)
	assert.Equal(t, p2, c)
	assert.Equal(t, 2, p1.started)
	assert.Equal(t, 1, p2.stopped)

	_, ok = p.Pop()
	assert.False(t, ok)
	assert.Equal(t, []string{"+grid", "+diff", "-diff>grid"}, l.events)
}

func TestPagesOverlay(t *testing.T) {
	p := NewPages()
	p.Push(newPage("grid"))

	p.ShowOverlay("help", tview.NewBox())
	name, _ := p.GetFrontPage()
	assert.Equal(t, "help", name)

	p.HideOverlay("help")
	name, _ = p.GetFrontPage()
	assert.Equal(t, "grid", name)
}

func TestConfirmAsk(t *testing.T) {
	uu := map[string]struct {
		button int
		e      bool
	}{
		"yes": {button: 0, e: true},
		"no":  {button: 1},
		"esc": {button: -1},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			p := NewPages()
			p.Push(newPage("grid"))
			c := NewConfirm(p)

			var answers []bool
			c.Ask("Delete k1?", func(b bool) { answers = append(answers, b) })
			name, _ := p.GetFrontPage()
			assert.Equal(t, confirmPage, name)

			c.handleButton(u.button, "")
			assert.Equal(t, []bool{u.e}, answers)
			assert.Equal(t, u.e, c.IsConfirmed())
			name, _ = p.GetFrontPage()
			assert.Equal(t, "grid", name)
		})
	}
}
