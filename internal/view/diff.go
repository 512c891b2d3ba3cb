// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package view

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/gridform/gridform/internal/model1"
	"github.com/gridform/gridform/internal/ui"
	"github.com/wI2L/jsondiff"
)

const diffTitleFmt = " %s/%s [%s] "

// Diff displays a row's current values and its pending changes.
type Diff struct {
	*tview.TextView

	app     *App
	row     model1.Row
	fields  []string
	patch   jsondiff.Patch
	format  string
	actions *ui.KeyActions
	wrapOn  bool
}

// NewDiff creates a new row change view.
func NewDiff(app *App, row model1.Row, fields []string) *Diff {
	d := &Diff{
		TextView: tview.NewTextView(),
		app:      app,
		row:      row,
		fields:   fields,
		format:   "yaml",
		actions:  ui.NewKeyActions(),
	}

	d.SetDynamicColors(true)
	d.SetWrap(false)
	d.SetWordWrap(false)
	d.SetScrollable(true)
	d.SetBorder(true)
	d.SetBorderPadding(0, 0, 1, 1)
	d.SetBorderColor(tcell.ColorAqua)

	return d
}

// Init computes the row patch and binds keys.
func (d *Diff) Init(context.Context) error {
	patch, err := d.row.Patch()
	if err != nil {
		return fmt.Errorf("failed to diff row: %w", err)
	}
	d.patch = patch
	d.bindKeys()
	d.SetInputCapture(d.keyboard)

	return nil
}

// Start renders the view.
func (d *Diff) Start() {
	d.Refresh()
}

// Stop clears the view.
func (d *Diff) Stop() {
	d.Clear()
}

// Name returns the view name.
func (d *Diff) Name() string {
	return "diff"
}

// Hints returns the menu hints for this view.
func (d *Diff) Hints() ui.MenuHints {
	return d.actions.Hints()
}

// Refresh redraws the content in the current format.
func (d *Diff) Refresh() {
	d.Clear()
	d.SetText(d.generateContent())
	d.updateTitle()
	d.ScrollToBeginning()
}

func (d *Diff) bindKeys() {
	d.actions.Bulk(ui.KeyMap{
		tcell.Key('y'): ui.NewKeyAction("YAML", d.formatCmd("yaml"), true),
		tcell.Key('o'): ui.NewKeyAction("JSON", d.formatCmd("json"), true),
		tcell.Key('w'): ui.NewKeyAction("Wrap", d.toggleWrap, true),
		tcell.KeyEsc:   ui.NewKeyAction("Back", nil, true),
	})
}

func (d *Diff) toggleWrap(*tcell.EventKey) *tcell.EventKey {
	d.wrapOn = !d.wrapOn
	d.SetWrap(d.wrapOn)
	d.SetWordWrap(d.wrapOn)
	return nil
}

func (d *Diff) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if evt == nil {
		return nil
	}

	if evt.Key() == tcell.KeyRune {
		row, _ := d.GetScrollOffset()
		switch evt.Rune() {
		case 'j':
			d.ScrollTo(row+1, 0)
			return nil
		case 'k':
			if row > 0 {
				d.ScrollTo(row-1, 0)
			}
			return nil
		case 'g':
			d.ScrollToBeginning()
			return nil
		case 'G':
			d.ScrollToEnd()
			return nil
		}
	}

	evt, _ = d.actions.Dispatch(evt)
	return evt
}

func (d *Diff) formatCmd(format string) ui.ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		d.format = format
		d.Refresh()
		return nil
	}
}

func (d *Diff) updateTitle() {
	id := d.row.Key
	if id == "" {
		id = "new"
	}
	d.SetTitle(fmt.Sprintf(diffTitleFmt, d.row.Status, id, strings.ToUpper(d.format)))
}

func (d *Diff) generateContent() string {
	switch d.format {
	case "json":
		return d.generateJSON()
	default:
		return d.generateYAML()
	}
}

// generateYAML renders the row values followed by the pending changes.
func (d *Diff) generateYAML() string {
	bb, err := MarshalRow(d.fields, d.row.Fields)
	if err != nil {
		return fmt.Sprintf("[red::]# Error generating YAML: %v[-::]", err)
	}

	var b strings.Builder
	b.WriteString(highlightYAML(string(bb)))
	b.WriteString("\n[gray::]# changes[-::]\n")
	b.WriteString(formatPatch(d.patch))

	return b.String()
}

func (d *Diff) generateJSON() string {
	out, err := json.MarshalIndent(struct {
		Key    string         `json:"key,omitempty"`
		Status string         `json:"status"`
		Fields model1.Fields  `json:"fields"`
		Patch  jsondiff.Patch `json:"patch"`
	}{
		Key:    d.row.Key,
		Status: d.row.Status.String(),
		Fields: d.row.Fields,
		Patch:  d.patch,
	}, "", "  ")
	if err != nil {
		return fmt.Sprintf("// Error generating JSON: %v", err)
	}

	return tview.Escape(string(out))
}

// formatPatch renders patch operations one per line.
func formatPatch(p jsondiff.Patch) string {
	if len(p) == 0 {
		return "[gray::]none[-::]\n"
	}

	var b strings.Builder
	for _, op := range p {
		field := unescapePointer(strings.TrimPrefix(op.Path, "/"))
		switch op.Type {
		case jsondiff.OperationAdd:
			fmt.Fprintf(&b, "[green::]+ %s[-::] %s\n", field, colorizeValue(fmt.Sprint(op.Value)))
		case jsondiff.OperationRemove:
			fmt.Fprintf(&b, "[red::]- %s[-::]\n", field)
		default:
			fmt.Fprintf(&b, "[yellow::]~ %s[-::] %s\n", field, colorizeValue(fmt.Sprint(op.Value)))
		}
	}

	return b.String()
}

// highlightYAML applies syntax highlighting to YAML content.
func highlightYAML(content string) string {
	var result strings.Builder
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		if line == "" {
			result.WriteString("\n")
			continue
		}

		colonIdx := strings.Index(line, ":")
		if colonIdx <= 0 {
			result.WriteString(tview.Escape(line) + "\n")
			continue
		}

		indent, key := splitIndent(line[:colonIdx+1])
		value := strings.TrimSpace(line[colonIdx+1:])
		if value == "" {
			fmt.Fprintf(&result, "%s[aqua::]%s[-::]\n", indent, key)
			continue
		}
		fmt.Fprintf(&result, "%s[aqua::]%s[-::] %s\n", indent, key, colorizeValue(value))
	}

	return result.String()
}

func splitIndent(s string) (string, string) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '-') {
		i++
	}
	return s[:i], s[i:]
}

// colorizeValue applies color based on value type.
func colorizeValue(value string) string {
	trimmed := strings.Trim(value, "\"'")
	escaped := tview.Escape(value)

	switch strings.ToLower(trimmed) {
	case "true":
		return "[green::]" + escaped + "[-::]"
	case "false":
		return "[red::]" + escaped + "[-::]"
	case "null", "nil", "~", "<nil>":
		return "[gray::]" + escaped + "[-::]"
	}
	if _, err := fmt.Sscanf(trimmed, "%f", new(float64)); err == nil {
		return "[fuchsia::]" + escaped + "[-::]"
	}

	return escaped
}
