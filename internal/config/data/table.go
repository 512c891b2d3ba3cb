package data

import (
	"errors"
	"fmt"
	"strings"

	"github.com/derailed/tview"
	"github.com/gdamore/tcell/v2"
	"github.com/gridform/gridform/internal/model1"
	"github.com/gridform/gridform/internal/validate"
)

// Column is the config form of a table column.
type Column struct {
	Name     string         `yaml:"name"`
	Title    string         `yaml:"title,omitempty"`
	Width    int            `yaml:"width,omitempty"`
	Align    string         `yaml:"align,omitempty"`
	NoSort   bool           `yaml:"noSort,omitempty"`
	ReadOnly bool           `yaml:"readOnly,omitempty"`
	Hide     bool           `yaml:"hide,omitempty"`
	Rules    *validate.Spec `yaml:"rules,omitempty"`
}

// Messages holds the user facing texts of a table.
type Messages struct {
	SortBlocked   string `yaml:"sortBlocked,omitempty"`
	ConfirmDelete string `yaml:"confirmDelete,omitempty"`
	DeleteFailed  string `yaml:"deleteFailed,omitempty"`
	Deleted       string `yaml:"deleted,omitempty"`
}

// StatusStyle overrides the status labels and colors.
type StatusStyle struct {
	Labels map[string]string `yaml:"labels,omitempty"`
	Colors map[string]string `yaml:"colors,omitempty"`
}

// Apply installs the overrides as the process wide status style.
func (s StatusStyle) Apply() error {
	for k, v := range s.Labels {
		st, ok := model1.ParseStatus(k)
		if !ok {
			return fmt.Errorf("unknown status %q", k)
		}
		model1.StatusLabels[st] = v
	}
	for k, v := range s.Colors {
		st, ok := model1.ParseStatus(k)
		if !ok {
			return fmt.Errorf("unknown status %q", k)
		}
		c := tcell.GetColor(v)
		if c == tcell.ColorDefault {
			return fmt.Errorf("unknown color %q", v)
		}
		switch st {
		case model1.StatusCreated:
			model1.AddColor = c
		case model1.StatusModified:
			model1.ModColor = c
		default:
			model1.StdColor = c
		}
	}
	return nil
}

// Table describes one editable table.
type Table struct {
	Name       string        `yaml:"name"`
	Data       string        `yaml:"data,omitempty"`
	RowNumbers bool          `yaml:"rowNumbers,omitempty"`
	Columns    []Column      `yaml:"columns"`
	Defaults   model1.Fields `yaml:"defaults,omitempty"`
	Messages   Messages      `yaml:"messages,omitempty"`
	Status     StatusStyle   `yaml:"status,omitempty"`
}

// Validate checks the table definition.
func (t Table) Validate() error {
	var errs []error
	if t.Name == "" {
		errs = append(errs, errors.New("table name is required"))
	}
	if len(t.Columns) == 0 {
		errs = append(errs, fmt.Errorf("table %q has no columns", t.Name))
	}
	seen := make(map[string]struct{}, len(t.Columns))
	for i, c := range t.Columns {
		switch {
		case c.Name == "":
			errs = append(errs, fmt.Errorf("table %q column #%d has no name", t.Name, i))
		case c.Name == model1.RowNumberCol:
			errs = append(errs, fmt.Errorf("table %q column name %q is reserved", t.Name, c.Name))
		}
		if _, ok := seen[c.Name]; ok {
			errs = append(errs, fmt.Errorf("table %q has duplicate column %q", t.Name, c.Name))
		}
		seen[c.Name] = struct{}{}
		if _, err := alignment(c.Align); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Header returns the grid header of the table.
func (t Table) Header() model1.Header {
	h := make(model1.Header, 0, len(t.Columns)+1)
	if t.RowNumbers {
		h = append(h, model1.HeaderColumn{
			Name:  model1.RowNumberCol,
			Title: "NO",
			Attrs: model1.Attrs{Align: tview.AlignRight, NoSort: true, ReadOnly: true},
		})
	}
	for _, c := range t.Columns {
		align, _ := alignment(c.Align)
		h = append(h, model1.HeaderColumn{
			Name:  c.Name,
			Title: c.Title,
			Attrs: model1.Attrs{
				Align:    align,
				Width:    c.Width,
				NoSort:   c.NoSort,
				ReadOnly: c.ReadOnly,
				Hide:     c.Hide,
			},
		})
	}
	return h
}

// Schema builds the validation schema of the table.
func (t Table) Schema() (validate.Schema, error) {
	s := make(validate.Schema, len(t.Columns))
	for _, c := range t.Columns {
		if c.Rules == nil {
			continue
		}
		title := c.Title
		if title == "" {
			title = c.Name
		}
		f, err := c.Rules.Build(title)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		s[c.Name] = f
	}
	return s, nil
}

func alignment(s string) (int, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return tview.AlignLeft, nil
	case "right":
		return tview.AlignRight, nil
	case "center":
		return tview.AlignCenter, nil
	}
	return 0, fmt.Errorf("invalid alignment %q", s)
}

// DefaultTable returns the table matching the sample dataset.
func DefaultTable() Table {
	return Table{
		Name:       "people",
		RowNumbers: true,
		Columns: []Column{
			{
				Name:  "name",
				Title: "Name",
				Width: 24,
				Rules: &validate.Spec{Required: true, Max: 40},
			},
			{
				Name:  "phone",
				Title: "Phone",
				Width: 14,
				Rules: &validate.Spec{
					Required:   true,
					Pattern:    []validate.PatternType{validate.PatternNumber},
					AllowSpace: new(bool),
					Input:      &validate.Input{Max: 11, Char: validate.CharNumeric, Spacing: new(bool)},
				},
			},
			{
				Name:  "email",
				Title: "Email",
				Width: 28,
				Rules: &validate.Spec{Regex: `^[^@\s]+@[^@\s]+\.[^@\s]+$`, Unique: true},
			},
			{
				Name:  "age",
				Title: "Age",
				Align: "right",
				Rules: &validate.Spec{Positive: true, Input: &validate.Input{Max: 3, Char: validate.CharNumeric, Spacing: new(bool)}},
			},
		},
		Defaults: model1.Fields{"name": "", "phone": "", "email": "", "age": ""},
	}
}

// LoadTable reads a standalone table definition file.
func LoadTable(path string) (Table, error) {
	var t Table
	if err := MustLoadYAML(path, &t); err != nil {
		return Table{}, err
	}
	if err := t.Validate(); err != nil {
		return Table{}, fmt.Errorf("invalid table file %q: %w", path, err)
	}
	return t, nil
}
