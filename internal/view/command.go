// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package view

import (
	"fmt"
	"sort"
	"strings"
)

// defaultAliases defines command shortcuts.
var defaultAliases = map[string]string{
	"a":     "append",
	"new":   "append",
	"w":     "submit",
	"save":  "submit",
	"r":     "reload",
	"d":     "diff",
	"h":     "help",
	"q":     "quit",
	"q!":    "quit!",
	"order": "sort",
}

// Command handles user command interpretation and execution.
type Command struct {
	app      *App
	aliases  map[string]string
	handlers map[string]func(args []string) error
}

// NewCommand creates a new command interpreter.
func NewCommand(app *App) *Command {
	c := Command{
		app:     app,
		aliases: make(map[string]string, len(defaultAliases)),
	}
	for k, v := range defaultAliases {
		c.aliases[k] = v
	}
	c.handlers = map[string]func([]string) error{
		"append": c.appendCmd,
		"submit": c.submitCmd,
		"reload": c.reloadCmd,
		"diff":   c.diffCmd,
		"sort":   c.sortCmd,
		"help":   c.helpCmd,
		"quit":   c.quitCmd,
		"quit!":  c.forceQuitCmd,
	}

	return &c
}

// Names returns the commands offered for completion.
func (c *Command) Names() []string {
	nn := make([]string, 0, len(c.handlers))
	for n := range c.handlers {
		nn = append(nn, n)
	}
	sort.Strings(nn)

	return nn
}

// Run parses and executes a command.
func (c *Command) Run(cmd string) error {
	cmd = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), ":"))
	if cmd == "" {
		return nil
	}

	cmdName, args := c.parseCommand(cmd)
	cmdName = c.resolveAlias(cmdName)

	h, ok := c.handlers[cmdName]
	if !ok {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	return h(args)
}

func (c *Command) table() (*Table, error) {
	if c.app.table == nil {
		return nil, fmt.Errorf("no table loaded")
	}
	return c.app.table, nil
}

func (c *Command) writable() (*Table, error) {
	t, err := c.table()
	if err != nil {
		return nil, err
	}
	if t.readOnly {
		return nil, fmt.Errorf("table %q is read-only", t.Name())
	}
	return t, nil
}

func (c *Command) appendCmd([]string) error {
	t, err := c.writable()
	if err != nil {
		return err
	}
	t.Append()

	return nil
}

func (c *Command) submitCmd([]string) error {
	t, err := c.writable()
	if err != nil {
		return err
	}
	go t.Submit()

	return nil
}

func (c *Command) reloadCmd([]string) error {
	t, err := c.table()
	if err != nil {
		return err
	}
	go t.Reload()

	return nil
}

func (c *Command) diffCmd([]string) error {
	t, err := c.table()
	if err != nil {
		return err
	}
	t.ShowDiff(t.SelectedRowID())

	return nil
}

// sortCmd sorts by the given column, or by the selected one.
func (c *Command) sortCmd(args []string) error {
	t, err := c.table()
	if err != nil {
		return err
	}
	field := t.SelectedField()
	if len(args) > 0 {
		field = args[0]
	}
	if field == "" {
		return fmt.Errorf("sort requires a column name")
	}
	if _, ok := t.spec.Header().Column(field); !ok {
		return fmt.Errorf("unknown column: %s", field)
	}
	t.SortBy(field)

	return nil
}

func (c *Command) helpCmd([]string) error {
	c.app.showHelp()
	return nil
}

func (c *Command) quitCmd([]string) error {
	c.app.quit()
	return nil
}

func (c *Command) forceQuitCmd([]string) error {
	c.app.Stop()
	return nil
}

// parseCommand parses a command string into command name and arguments.
func (c *Command) parseCommand(cmd string) (string, []string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return "", nil
	}

	return parts[0], parts[1:]
}

// resolveAlias resolves a command alias to its full form.
func (c *Command) resolveAlias(cmd string) string {
	if alias, ok := c.aliases[cmd]; ok {
		return alias
	}
	return cmd
}
