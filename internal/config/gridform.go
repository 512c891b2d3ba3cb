package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/gridform/gridform/internal/config/data"
)

// DefaultAPITimeout bounds remote dataset calls.
const DefaultAPITimeout = 30 * time.Second

// Gridform represents the gridform global configuration.
type Gridform struct {
	LogLevel     string       `yaml:"logLevel"`
	APITimeout   string       `yaml:"apiTimeout"`
	ReadOnly     bool         `yaml:"readOnly"`
	DefaultTable string       `yaml:"defaultTable"`
	Data         string       `yaml:"data,omitempty"`
	AWS          data.AWS     `yaml:"aws"`
	UI           data.UI      `yaml:"ui"`
	Tables       []data.Table `yaml:"tables,omitempty"`

	activeTable string
	mx          sync.RWMutex
}

// NewGridform creates a Gridform with default settings.
func NewGridform() *Gridform {
	return &Gridform{
		LogLevel:   DefaultLogLevel,
		APITimeout: DefaultAPITimeout.String(),
	}
}

// Validate ensures Gridform has valid settings.
func (g *Gridform) Validate() error {
	g.mx.Lock()
	defer g.mx.Unlock()

	if g.LogLevel == "" {
		g.LogLevel = DefaultLogLevel
	}
	if g.APITimeout == "" {
		g.APITimeout = DefaultAPITimeout.String()
	}

	seen := make(map[string]struct{}, len(g.Tables))
	for _, t := range g.Tables {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, ok := seen[t.Name]; ok {
			return fmt.Errorf("duplicate table %q", t.Name)
		}
		seen[t.Name] = struct{}{}
	}

	return nil
}

// Override applies CLI flag overrides to the configuration.
func (g *Gridform) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	g.mx.Lock()
	defer g.mx.Unlock()

	if IsStringSet(flags.LogLevel) {
		g.LogLevel = *flags.LogLevel
	}
	if IsBoolSet(flags.ReadOnly) {
		g.ReadOnly = true
	}
	if IsStringSet(flags.Data) {
		g.Data = *flags.Data
	}
	if IsStringSet(flags.Profile) {
		g.AWS.Profile = *flags.Profile
	}
	if IsStringSet(flags.Region) {
		g.AWS.Region = *flags.Region
	}
}

// SetTable adds a table definition, replacing any table of the same name.
func (g *Gridform) SetTable(t data.Table) {
	g.mx.Lock()
	defer g.mx.Unlock()

	for i := range g.Tables {
		if g.Tables[i].Name == t.Name {
			g.Tables[i] = t
			return
		}
	}
	g.Tables = append(g.Tables, t)
}

// Table returns a table definition by name.
func (g *Gridform) Table(name string) (data.Table, bool) {
	g.mx.RLock()
	defer g.mx.RUnlock()

	for _, t := range g.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return data.Table{}, false
}

// TableNames returns the configured table names.
func (g *Gridform) TableNames() []string {
	g.mx.RLock()
	defer g.mx.RUnlock()

	nn := make([]string, 0, len(g.Tables))
	for _, t := range g.Tables {
		nn = append(nn, t.Name)
	}
	return nn
}

// ActivateTable selects the table to open.
func (g *Gridform) ActivateTable(name string) error {
	if _, ok := g.Table(name); !ok {
		return fmt.Errorf("table %q not found", name)
	}

	g.mx.Lock()
	defer g.mx.Unlock()
	g.activeTable = name

	return nil
}

// ActiveTable returns the selected table definition.
func (g *Gridform) ActiveTable() (data.Table, bool) {
	g.mx.RLock()
	name := g.activeTable
	g.mx.RUnlock()

	return g.Table(name)
}

// DataLocation returns the dataset of the active table. The global data
// setting wins over the table one.
func (g *Gridform) DataLocation() string {
	g.mx.RLock()
	loc := g.Data
	g.mx.RUnlock()
	if loc != "" {
		return loc
	}
	if t, ok := g.ActiveTable(); ok {
		return t.Data
	}
	return ""
}

// IsReadOnly returns true if edits are disabled.
func (g *Gridform) IsReadOnly() bool {
	g.mx.RLock()
	defer g.mx.RUnlock()
	return g.ReadOnly
}

// GetAPITimeout returns the parsed API timeout duration.
func (g *Gridform) GetAPITimeout() (time.Duration, error) {
	g.mx.RLock()
	timeoutStr := g.APITimeout
	g.mx.RUnlock()

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return 0, fmt.Errorf("invalid API timeout %q: %w", timeoutStr, err)
	}

	return timeout, nil
}
