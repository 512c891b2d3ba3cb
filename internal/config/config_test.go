package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridform/gridform/internal/config"
	"github.com/gridform/gridform/internal/config/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cfgYAML = `gridform:
  logLevel: debug
  defaultTable: orders
  data: orders.yaml
  aws:
    profile: dev
  tables:
    - name: people
      columns:
        - name: name
    - name: orders
      columns:
        - name: sku
        - name: qty
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestConfigLoad(t *testing.T) {
	cfg := config.NewConfig()
	require.NoError(t, cfg.Load(writeFile(t, "gridform.yaml", cfgYAML), true))

	g := cfg.Gridform
	assert.Equal(t, "debug", g.LogLevel)
	assert.Equal(t, []string{"people", "orders"}, g.TableNames())
	assert.Equal(t, "dev", g.AWS.Profile)
	d, err := g.GetAPITimeout()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAPITimeout, d)
}

func TestConfigLoadMissing(t *testing.T) {
	cfg := config.NewConfig()
	path := filepath.Join(t.TempDir(), "nope.yaml")

	assert.NoError(t, cfg.Load(path, false))
	assert.Error(t, cfg.Load(path, true))
}

func TestConfigLoadDupTable(t *testing.T) {
	body := `gridform:
  tables:
    - name: a
      columns: [{name: x}]
    - name: a
      columns: [{name: y}]
`
	cfg := config.NewConfig()
	assert.Error(t, cfg.Load(writeFile(t, "dup.yaml", body), true))
}

func TestConfigRefine(t *testing.T) {
	uu := map[string]struct {
		cfg      string
		flags    func(*data.Flags)
		table    string
		data     string
		readOnly bool
	}{
		"defaultTable": {
			cfg:   cfgYAML,
			flags: func(*data.Flags) {},
			table: "orders",
			data:  "orders.yaml",
		},
		"nameFlag": {
			cfg: cfgYAML,
			flags: func(f *data.Flags) {
				*f.TableName = "people"
				*f.Data = "s3://b/people.json"
				*f.ReadOnly = true
			},
			table:    "people",
			data:     "s3://b/people.json",
			readOnly: true,
		},
		"builtin": {
			flags: func(*data.Flags) {},
			table: "people",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			cfg := config.NewConfig()
			if u.cfg != "" {
				require.NoError(t, cfg.Load(writeFile(t, "gridform.yaml", u.cfg), true))
			}
			flags := config.NewFlags()
			*flags.LogLevel = ""
			u.flags(flags)

			require.NoError(t, cfg.Refine(flags))
			tbl, ok := cfg.Gridform.ActiveTable()
			require.True(t, ok)
			assert.Equal(t, u.table, tbl.Name)
			assert.Equal(t, u.data, cfg.Gridform.DataLocation())
			assert.Equal(t, u.readOnly, cfg.Gridform.IsReadOnly())
		})
	}
}

func TestConfigRefineTableFile(t *testing.T) {
	tf := writeFile(t, "t.yaml", "name: scratch\ndata: mem://scratch\ncolumns:\n  - name: note\n")

	cfg := config.NewConfig()
	flags := config.NewFlags()
	*flags.TableFile = tf
	*flags.TableName = "ignored"

	require.NoError(t, cfg.Refine(flags))
	tbl, ok := cfg.Gridform.ActiveTable()
	require.True(t, ok)
	assert.Equal(t, "scratch", tbl.Name)
	assert.Equal(t, "mem://scratch", cfg.Gridform.DataLocation())
}

func TestConfigRefineUnknownTable(t *testing.T) {
	cfg := config.NewConfig()
	flags := config.NewFlags()
	*flags.TableName = "zorg"

	assert.Error(t, cfg.Refine(flags))
}

func TestKeyBindings(t *testing.T) {
	kb := config.NewKeyBindings()
	assert.Equal(t, "a", kb.Get(config.ActionAppend))

	path := writeFile(t, "keys.yaml", "keys:\n  append: Ctrl-A\n")
	require.NoError(t, kb.LoadFrom(path))
	assert.Equal(t, "Ctrl-A", kb.Get(config.ActionAppend))
	assert.Equal(t, "Ctrl-S", kb.Get(config.ActionSubmit))
	assert.Len(t, kb.Actions(), len(config.DefaultKeys))

	require.NoError(t, kb.LoadFrom(filepath.Join(t.TempDir(), "nope.yaml")))
}
