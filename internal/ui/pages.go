package ui

import (
	"sync"

	"github.com/derailed/tview"
)

// Pages represents a stack of content pages
type Pages struct {
	*tview.Pages
	stack     []Component
	listeners []PageListener
	mx        sync.RWMutex
}

// NewPages returns a new pages manager
func NewPages() *Pages {
	return &Pages{
		Pages: tview.NewPages(),
	}
}

// AddListener registers a page listener. The current top is reported right
// away.
func (p *Pages) AddListener(l PageListener) {
	p.mx.Lock()
	p.listeners = append(p.listeners, l)
	p.mx.Unlock()

	if top := p.Top(); top != nil {
		l.PagePushed(top)
	}
}

// Push stops the current page and shows a new one
func (p *Pages) Push(c Component) {
	if top := p.Top(); top != nil {
		top.Stop()
	}

	p.mx.Lock()
	p.stack = append(p.stack, c)
	ll := append([]PageListener(nil), p.listeners...)
	p.mx.Unlock()

	p.AddPage(c.Name(), c, true, true)
	p.SwitchToPage(c.Name())
	c.Start()
	for _, l := range ll {
		l.PagePushed(c)
	}
}

// Pop removes the current page, unless it is the last one
func (p *Pages) Pop() (Component, bool) {
	p.mx.Lock()
	if len(p.stack) < 2 {
		p.mx.Unlock()
		return nil, false
	}
	c := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	top := p.stack[len(p.stack)-1]
	ll := append([]PageListener(nil), p.listeners...)
	p.mx.Unlock()

	c.Stop()
	p.RemovePage(c.Name())
	p.SwitchToPage(top.Name())
	top.Start()
	for _, l := range ll {
		l.PagePopped(c, top)
	}

	return c, true
}

// Top returns the current page
func (p *Pages) Top() Component {
	p.mx.RLock()
	defer p.mx.RUnlock()

	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

// Flatten returns the page names from bottom to top
func (p *Pages) Flatten() []string {
	p.mx.RLock()
	defer p.mx.RUnlock()

	ss := make([]string, len(p.stack))
	for i, c := range p.stack {
		ss[i] = c.Name()
	}
	return ss
}

// ShowOverlay displays a transient primitive, such as a dialog, above the
// stack.
func (p *Pages) ShowOverlay(name string, pr tview.Primitive) {
	p.AddPage(name, pr, true, true)
}

// HideOverlay removes a transient primitive.
func (p *Pages) HideOverlay(name string) {
	p.RemovePage(name)
}
