package config

import (
	"os"
	"sort"
	"sync"

	"github.com/gridform/gridform/internal/config/data"
)

// Action names a bindable table action.
type Action string

const (
	ActionAppend  Action = "append"
	ActionRemove  Action = "remove"
	ActionEdit    Action = "edit"
	ActionEditRow Action = "editRow"
	ActionSort    Action = "sort"
	ActionSubmit  Action = "submit"
	ActionReload  Action = "reload"
	ActionDiff    Action = "diff"
)

// DefaultKeys are the built-in key bindings.
var DefaultKeys = map[Action]string{
	ActionAppend:  "a",
	ActionRemove:  "Ctrl-D",
	ActionEdit:    "Enter",
	ActionEditRow: "e",
	ActionSort:    "s",
	ActionSubmit:  "Ctrl-S",
	ActionReload:  "Ctrl-R",
	ActionDiff:    "d",
}

// KeyBindings represents the key bindings configuration.
type KeyBindings struct {
	Keys map[Action]string `yaml:"keys"`
	mx   sync.RWMutex      `yaml:"-"`
}

// NewKeyBindings creates bindings seeded with the defaults.
func NewKeyBindings() *KeyBindings {
	kk := make(map[Action]string, len(DefaultKeys))
	for a, k := range DefaultKeys {
		kk[a] = k
	}
	return &KeyBindings{Keys: kk}
}

// Load loads key bindings from the default config file.
func (k *KeyBindings) Load() error {
	return k.LoadFrom(AppKeysFile)
}

// LoadFrom merges bindings from a file over the current ones. A missing
// file keeps the current bindings.
func (k *KeyBindings) LoadFrom(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	var other KeyBindings
	if err := data.LoadYAML(path, &other); err != nil {
		return err
	}
	k.Merge(&other)

	return nil
}

// SaveTo saves key bindings to a specific file path.
func (k *KeyBindings) SaveTo(path string) error {
	k.mx.RLock()
	defer k.mx.RUnlock()

	return data.SaveYAML(path, k)
}

// Merge merges another set of bindings into this one.
// Keys in other override existing keys.
func (k *KeyBindings) Merge(other *KeyBindings) {
	k.mx.Lock()
	defer k.mx.Unlock()

	other.mx.RLock()
	defer other.mx.RUnlock()

	for a, key := range other.Keys {
		k.Keys[a] = key
	}
}

// Get returns the key bound to an action.
func (k *KeyBindings) Get(a Action) string {
	k.mx.RLock()
	defer k.mx.RUnlock()
	return k.Keys[a]
}

// Actions returns all bound actions.
func (k *KeyBindings) Actions() []Action {
	k.mx.RLock()
	defer k.mx.RUnlock()

	aa := make([]Action, 0, len(k.Keys))
	for a := range k.Keys {
		aa = append(aa, a)
	}
	sort.Slice(aa, func(i, j int) bool { return aa[i] < aa[j] })

	return aa
}
