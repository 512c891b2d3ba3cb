// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandNames(t *testing.T) {
	c := NewCommand(&App{})

	assert.Equal(t, []string{"append", "diff", "help", "quit", "quit!", "reload", "sort", "submit"}, c.Names())
}

func TestCommandParse(t *testing.T) {
	c := NewCommand(&App{})

	uu := map[string]struct {
		in   string
		cmd  string
		args []string
	}{
		"blank":  {},
		"simple": {in: "submit", cmd: "submit", args: []string{}},
		"args":   {in: "sort  name", cmd: "sort", args: []string{"name"}},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			cmd, args := c.parseCommand(u.in)
			assert.Equal(t, u.cmd, cmd)
			assert.Equal(t, u.args, args)
		})
	}
}

func TestCommandAlias(t *testing.T) {
	c := NewCommand(&App{})

	assert.Equal(t, "submit", c.resolveAlias("w"))
	assert.Equal(t, "append", c.resolveAlias("new"))
	assert.Equal(t, "bozo", c.resolveAlias("bozo"))
}

func TestCommandRun(t *testing.T) {
	c := NewCommand(&App{})

	uu := map[string]struct {
		cmd string
		err string
	}{
		"blank":   {cmd: " : "},
		"unknown": {cmd: ":bozo", err: "unknown command: bozo"},
		"noTable": {cmd: "w", err: "no table loaded"},
		"sort":    {cmd: "sort name", err: "no table loaded"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			err := c.Run(u.cmd)
			if u.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, u.err)
		})
	}
}
