// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// Crumbs represents user breadcrumbs.
type Crumbs struct {
	*tview.TextView

	pages *Pages
	dirty bool
}

// NewCrumbs returns a new breadcrumb view tracking a page stack.
func NewCrumbs(p *Pages) *Crumbs {
	c := &Crumbs{
		pages:    p,
		TextView: tview.NewTextView(),
	}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextAlign(tview.AlignLeft)
	c.SetBorderPadding(0, 0, 1, 1)
	c.SetDynamicColors(true)

	return c
}

// PagePushed indicates a new page was added.
func (c *Crumbs) PagePushed(Component) {
	c.refresh(c.pages.Flatten())
}

// PagePopped indicates a page was removed.
func (c *Crumbs) PagePopped(_, _ Component) {
	c.refresh(c.pages.Flatten())
}

// SetDirty flags the table as holding unsaved changes.
func (c *Crumbs) SetDirty(b bool) {
	if c.dirty == b {
		return
	}
	c.dirty = b
	c.refresh(c.pages.Flatten())
}

func (c *Crumbs) refresh(crumbs []string) {
	c.Clear()
	last := len(crumbs) - 1

	for i, crumb := range crumbs {
		crumb = strings.ReplaceAll(strings.ToLower(crumb), " ", "")
		if i == last {
			_, _ = fmt.Fprintf(c, "[yellow:black:b] <%s> [-:-:-] ", crumb)
		} else {
			_, _ = fmt.Fprintf(c, "[gray::-] <%s> [-:-:-] ", crumb)
		}
	}
	if c.dirty {
		_, _ = fmt.Fprint(c, "[orange::b]*unsaved*[-::-]")
	}
}
