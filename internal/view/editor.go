// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package view

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/derailed/tview"
	"github.com/gridform/gridform/internal/model1"
	"github.com/spf13/cast"
	"github.com/wI2L/jsondiff"
	"gopkg.in/yaml.v3"
)

// Editor errors
var (
	ErrEditorCancelled = errors.New("editor cancelled")
	ErrNoChanges       = errors.New("no changes detected")
	ErrInvalidYAML     = errors.New("invalid YAML")
)

// RowEditor writes one cell. Table satisfies it through its model.
type RowEditor interface {
	Edit(ctx context.Context, rowID, field string, value any) error
}

// EditSession represents an in-progress row edit.
type EditSession struct {
	RowID    string
	Fields   []string      // Editable fields in column order
	Original model1.Fields // Values before the edit
	TempFile string
	ErrorMsg string // Error to display at top of file on retry
}

// NewEditSession creates a new edit session over the given fields only.
func NewEditSession(rowID string, fields []string, values model1.Fields) *EditSession {
	orig := make(model1.Fields, len(fields))
	for _, f := range fields {
		orig[f] = values[f]
	}

	return &EditSession{
		RowID:    rowID,
		Fields:   fields,
		Original: orig,
	}
}

// StartEdit creates a temp file, spawns the editor, and returns the edited
// values. It suspends the TUI during editing.
func (e *EditSession) StartEdit(app *tview.Application) (model1.Fields, error) {
	e.Cleanup()
	tmpFile, err := os.CreateTemp("", "gridform-row-*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	e.TempFile = tmpFile.Name()

	if err := e.writeYAML(tmpFile); err != nil {
		tmpFile.Close()
		return nil, err
	}
	tmpFile.Close()

	exitCode, err := e.spawnEditor(app)
	if err != nil {
		return nil, fmt.Errorf("editor failed: %w", err)
	}
	if exitCode != 0 {
		return nil, ErrEditorCancelled
	}

	content, err := os.ReadFile(e.TempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}

	return ParseRow(content)
}

// spawnEditor suspends the TUI and launches the editor.
func (e *EditSession) spawnEditor(app *tview.Application) (int, error) {
	var exitCode int
	suspended := app.Suspend(func() {
		cmd := exec.Command(getEditor(), e.TempFile)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
			} else {
				exitCode = 1
			}
		}
	})

	if !suspended {
		return 1, errors.New("failed to suspend application")
	}

	return exitCode, nil
}

// writeYAML writes the row to the temp file, optionally with an error
// comment at the top.
func (e *EditSession) writeYAML(f *os.File) error {
	var buf bytes.Buffer
	if e.ErrorMsg != "" {
		buf.WriteString("# ERROR: " + e.ErrorMsg + "\n")
		buf.WriteString("# Fix the issue below and save, or quit without saving to cancel.\n\n")
	}

	bb, err := MarshalRow(e.Fields, e.Original)
	if err != nil {
		return err
	}
	buf.Write(bb)

	_, err = f.Write(buf.Bytes())
	return err
}

// Changes returns the fields whose edited value differs from the original.
// Values of string fields stay strings.
func (e *EditSession) Changes(modified model1.Fields) (model1.Fields, error) {
	patch, err := jsondiff.Compare(map[string]any(e.Original), map[string]any(modified))
	if err != nil {
		return nil, fmt.Errorf("failed to generate patch: %w", err)
	}

	out := make(model1.Fields)
	for _, op := range patch {
		field := unescapePointer(strings.TrimPrefix(op.Path, "/"))
		if strings.Contains(field, "/") {
			field = field[:strings.Index(field, "/")]
		}
		if !slices.Contains(e.Fields, field) {
			return nil, fmt.Errorf("unknown field %q", field)
		}
		v := modified[field]
		if _, ok := e.Original[field].(string); ok || op.Type == jsondiff.OperationRemove {
			v = cast.ToString(v)
		}
		if model1.LooseEqual(e.Original[field], v) {
			continue
		}
		out[field] = v
	}
	if len(out) == 0 {
		return nil, ErrNoChanges
	}

	return out, nil
}

// Cleanup removes the temporary file.
func (e *EditSession) Cleanup() {
	if e.TempFile != "" {
		os.Remove(e.TempFile)
		e.TempFile = ""
	}
}

// SetError sets the error message for display on retry.
func (e *EditSession) SetError(msg string) {
	e.ErrorMsg = msg
}

// MarshalRow renders values as a YAML mapping in field order.
func MarshalRow(fields []string, values model1.Fields) ([]byte, error) {
	node := yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		var v yaml.Node
		if err := v.Encode(values[f]); err != nil {
			return nil, fmt.Errorf("failed to encode %q: %w", f, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: f}, &v)
	}

	return yaml.Marshal(&node)
}

// ParseRow reads a YAML mapping back into values.
func ParseRow(bb []byte) (model1.Fields, error) {
	var ff model1.Fields
	if err := yaml.Unmarshal(bb, &ff); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if ff == nil {
		ff = make(model1.Fields)
	}

	return ff, nil
}

// getEditor returns the editor command to use.
// Checks $EDITOR, then falls back to vim, then nano.
func getEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	if _, err := exec.LookPath("vim"); err == nil {
		return "vim"
	}
	return "nano"
}

func unescapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}

// EditRow runs the full external edit flow for a row and returns the number
// of fields written.
func EditRow(ctx context.Context, app *tview.Application, t *Table, rowID string) (int, error) {
	values, ok := t.table.Store().Row(rowID)
	if !ok {
		return 0, fmt.Errorf("row %q not found", rowID)
	}
	var fields []string
	for _, c := range t.table.Grid().Header() {
		if c.Name != model1.RowNumberCol && !c.ReadOnly {
			fields = append(fields, c.Name)
		}
	}

	session := NewEditSession(rowID, fields, values)
	defer session.Cleanup()

	return session.Run(ctx, app, t.table)
}

// Run edits until the changes apply cleanly or the user gives up.
func (e *EditSession) Run(ctx context.Context, app *tview.Application, w RowEditor) (int, error) {
	for {
		modified, err := e.StartEdit(app)
		if errors.Is(err, ErrInvalidYAML) {
			e.SetError(err.Error())
			continue
		}
		if err != nil {
			return 0, err
		}

		changes, err := e.Changes(modified)
		if errors.Is(err, ErrNoChanges) {
			return 0, err
		}
		if err != nil {
			e.SetError(err.Error())
			continue
		}

		if err := e.Apply(ctx, w, changes); err != nil {
			e.SetError(err.Error())
			continue
		}

		return len(changes), nil
	}
}

// Apply writes the changed fields in field order.
func (e *EditSession) Apply(ctx context.Context, w RowEditor, changes model1.Fields) error {
	for _, f := range e.Fields {
		v, ok := changes[f]
		if !ok {
			continue
		}
		if err := w.Edit(ctx, e.RowID, f, v); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		e.Original[f] = v
	}

	return nil
}
