// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package ui

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/derailed/tcell/v2"
)

// Rune keys are stored as tcell.Key(rune) so they share the KeyMap with
// special keys.
const (
	KeySlash    = tcell.Key('/')
	KeyColon    = tcell.Key(':')
	KeyQuestion = tcell.Key('?')
	KeyJ        = tcell.Key('j')
	KeyK        = tcell.Key('k')
	KeyG        = tcell.Key('g')
	KeyShiftG   = tcell.Key('G')
)

// ActionHandler handles a keyboard command.
type ActionHandler func(*tcell.EventKey) *tcell.EventKey

// KeyAction represents a keyboard action.
type KeyAction struct {
	Description string
	Action      ActionHandler
	Visible     bool
}

// NewKeyAction returns a new keyboard action.
func NewKeyAction(d string, a ActionHandler, visible bool) KeyAction {
	return KeyAction{Description: d, Action: a, Visible: visible}
}

// KeyMap tracks key to action mappings.
type KeyMap map[tcell.Key]KeyAction

// KeyActions tracks the actions bound to a component.
type KeyActions struct {
	actions KeyMap
	mx      sync.RWMutex
}

// NewKeyActions returns an empty action set.
func NewKeyActions() *KeyActions {
	return &KeyActions{actions: make(KeyMap)}
}

// Add binds one action.
func (a *KeyActions) Add(k tcell.Key, ka KeyAction) {
	a.mx.Lock()
	defer a.mx.Unlock()
	a.actions[k] = ka
}

// Bulk binds several actions.
func (a *KeyActions) Bulk(km KeyMap) {
	a.mx.Lock()
	defer a.mx.Unlock()
	for k, ka := range km {
		a.actions[k] = ka
	}
}

// Delete unbinds keys.
func (a *KeyActions) Delete(kk ...tcell.Key) {
	a.mx.Lock()
	defer a.mx.Unlock()
	for _, k := range kk {
		delete(a.actions, k)
	}
}

// Get returns the action bound to a key.
func (a *KeyActions) Get(k tcell.Key) (KeyAction, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()
	ka, ok := a.actions[k]
	return ka, ok
}

// Len returns the number of bound keys.
func (a *KeyActions) Len() int {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return len(a.actions)
}

// Hints returns the visible bindings as menu hints.
func (a *KeyActions) Hints() MenuHints {
	a.mx.RLock()
	defer a.mx.RUnlock()

	kk := make([]tcell.Key, 0, len(a.actions))
	for k := range a.actions {
		kk = append(kk, k)
	}
	sort.Slice(kk, func(i, j int) bool { return kk[i] < kk[j] })

	hh := make(MenuHints, 0, len(kk))
	for _, k := range kk {
		ka := a.actions[k]
		hh = append(hh, MenuHint{
			Mnemonic:    KeyName(k),
			Description: ka.Description,
			Visible:     ka.Visible,
		})
	}
	return hh
}

// Dispatch runs the action bound to an event, if any.
func (a *KeyActions) Dispatch(evt *tcell.EventKey) (*tcell.EventKey, bool) {
	k := evt.Key()
	if k == tcell.KeyRune {
		k = tcell.Key(evt.Rune())
	}
	ka, ok := a.Get(k)
	if !ok || ka.Action == nil {
		return evt, false
	}
	return ka.Action(evt), true
}

// KeyName returns the display name of a key.
func KeyName(k tcell.Key) string {
	if n, ok := tcell.KeyNames[k]; ok {
		return n
	}
	return string(rune(k))
}

// ParseKey converts a key name such as "a", "Ctrl-S" or "Enter" to a key.
func ParseKey(s string) (tcell.Key, error) {
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return tcell.Key(r), nil
	}
	for k, n := range tcell.KeyNames {
		if strings.EqualFold(n, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", s)
}
