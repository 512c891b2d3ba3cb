package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/gridform/gridform/internal/config/data"
)

// Config is the root configuration for the application.
type Config struct {
	Gridform *Gridform `yaml:"gridform"`
	mx       sync.RWMutex
}

// NewConfig creates a new Config with default settings.
func NewConfig() *Config {
	return &Config{
		Gridform: NewGridform(),
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, the current config is kept.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !force {
			return nil
		}
		return fmt.Errorf("config file does not exist: %s", path)
	}

	if err := data.LoadYAML(path, c); err != nil {
		return fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if c.Gridform == nil {
		c.Gridform = NewGridform()
	}

	return c.Gridform.Validate()
}

// Save saves the configuration to the given path.
// If force is false, only saves if the file already exists.
func (c *Config) Save(path string, force bool) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if path == "" {
		return fmt.Errorf("no config file path configured")
	}

	_, err := os.Stat(path)
	fileExists := err == nil
	if !force && !fileExists {
		return nil
	}

	if err := data.SaveYAML(path, c); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}

	return nil
}

// Refine applies CLI flags to determine the final configuration:
// - Table: --table file > --name > config defaultTable > first table > built-in sample
// - Data: --data > config data > table data > sample dataset
func (c *Config) Refine(flags *data.Flags) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.Gridform == nil {
		return fmt.Errorf("config.Gridform is nil")
	}
	g := c.Gridform
	g.Override(flags)

	var name string
	if flags != nil && IsStringSet(flags.TableFile) {
		t, err := data.LoadTable(*flags.TableFile)
		if err != nil {
			return err
		}
		g.SetTable(t)
		name = t.Name
	}
	if name == "" && flags != nil && IsStringSet(flags.TableName) {
		name = *flags.TableName
	}
	if name == "" {
		name = g.DefaultTable
	}
	if name == "" {
		if nn := g.TableNames(); len(nn) > 0 {
			name = nn[0]
		}
	}
	if name == "" {
		def := data.DefaultTable()
		g.SetTable(def)
		name = def.Name
	}

	if err := g.ActivateTable(name); err != nil {
		return err
	}
	t, _ := g.ActiveTable()

	return t.Status.Apply()
}
