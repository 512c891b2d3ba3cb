// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of gridform

package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/gridform/gridform/internal/config"
	"github.com/gridform/gridform/internal/dao"
	"github.com/gridform/gridform/internal/ui"
)

const (
	// FlashDelay sets the flash auto-clear delay.
	FlashDelay = 5 * time.Second
)

// FlashLevel represents flash message severity.
type FlashLevel int

const (
	// FlashInfo represents an info message.
	FlashInfo FlashLevel = iota
	// FlashWarn represents a warning message.
	FlashWarn
	// FlashErr represents an error message.
	FlashErr
)

// Flash handles flash messages in the application.
type Flash struct {
	*tview.TextView
	app    *App
	log    *slog.Logger
	cancel context.CancelFunc
	mx     sync.RWMutex
}

// NewFlash creates a new Flash instance.
func NewFlash(app *App) *Flash {
	log := slog.Default()
	if app != nil {
		log = app.log
	}
	f := &Flash{
		TextView: tview.NewTextView(),
		app:      app,
		log:      log.With("component", "flash"),
	}
	f.SetDynamicColors(true)
	f.SetTextAlign(tview.AlignLeft)
	f.SetBorderPadding(0, 0, 1, 1)
	return f
}

// Info displays an informational message.
func (f *Flash) Info(msg string) {
	f.setMessage(FlashInfo, msg)
}

// Infof displays a formatted informational message.
func (f *Flash) Infof(format string, args ...any) {
	f.Info(fmt.Sprintf(format, args...))
}

// Warn displays a warning message.
func (f *Flash) Warn(msg string) {
	f.setMessage(FlashWarn, msg)
}

// Warnf displays a formatted warning message.
func (f *Flash) Warnf(format string, args ...any) {
	f.Warn(fmt.Sprintf(format, args...))
}

// Err displays an error message.
func (f *Flash) Err(err error) {
	if err != nil {
		f.setMessage(FlashErr, err.Error())
	}
}

// Errf displays a formatted error message.
func (f *Flash) Errf(format string, args ...any) {
	f.setMessage(FlashErr, fmt.Sprintf(format, args...))
}

// Clear clears the flash message.
func (f *Flash) Clear() {
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mx.Unlock()

	if f.app != nil {
		f.app.QueueUpdateDraw(func() {
			f.TextView.Clear()
		})
	} else {
		f.TextView.Clear()
	}
}

func (f *Flash) setMessage(level FlashLevel, msg string) {
	f.mx.Lock()
	// Cancel any existing auto-clear timer
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mx.Unlock()

	if msg == "" {
		f.Clear()
		return
	}
	f.log.Log(context.Background(), flashLogLevel(level), msg)

	// Update UI with message
	updateFn := func() {
		f.TextView.Clear()
		f.SetTextColor(flashColor(level))
		fmt.Fprintf(f.TextView, "%s %s", flashPrefix(level), msg)
	}

	if f.app != nil {
		f.app.QueueUpdateDraw(updateFn)
	} else {
		updateFn()
	}

	// Start auto-clear timer
	ctx, cancel := context.WithCancel(context.Background())
	f.mx.Lock()
	f.cancel = cancel
	f.mx.Unlock()

	go f.autoClear(ctx)
}

func (f *Flash) autoClear(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(FlashDelay):
		f.Clear()
	}
}

func flashColor(level FlashLevel) tcell.Color {
	switch level {
	case FlashWarn:
		return tcell.ColorYellow
	case FlashErr:
		return tcell.ColorRed
	default:
		return tcell.ColorGreen
	}
}

func flashLogLevel(level FlashLevel) slog.Level {
	switch level {
	case FlashWarn:
		return slog.LevelWarn
	case FlashErr:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func flashPrefix(level FlashLevel) string {
	switch level {
	case FlashWarn:
		return "[WARN]"
	case FlashErr:
		return "[ERROR]"
	default:
		return "[INFO]"
	}
}

// App represents the main application container.
type App struct {
	*tview.Application
	version  string
	Main     *tview.Pages
	Content  *ui.Pages
	config   *config.Config
	keys     *config.KeyBindings
	command  *Command
	factory  dao.Factory
	cmdBar   *ui.CmdBar
	menu     *ui.Menu
	crumbs   *ui.Crumbs
	flash    *Flash
	help     *Help
	prompter *Prompter
	table    *Table
	log      *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	quitArm  bool
	running  bool
	mx       sync.RWMutex
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, keys *config.KeyBindings, version string, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	if keys == nil {
		keys = config.NewKeyBindings()
	}
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Application: tview.NewApplication(),
		version:     version,
		Main:        tview.NewPages(),
		Content:     ui.NewPages(),
		config:      cfg,
		keys:        keys,
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
	}

	app.flash = NewFlash(app)
	app.menu = ui.NewMenu()
	app.crumbs = ui.NewCrumbs(app.Content)
	app.cmdBar = ui.NewCmdBar()
	app.help = NewHelp(keys)
	app.prompter = NewPrompter(app)

	app.Application.SetInputCapture(app.keyboard)
	if cfg != nil && cfg.Gridform != nil {
		app.EnableMouse(cfg.Gridform.UI.EnableMouse)
	}

	app.cmdBar.SetActiveFn(func(active bool) {
		if active {
			app.SetFocus(app.cmdBar)
		} else {
			app.SetFocus(app.Content)
		}
	})
	app.cmdBar.SetCommandFn(func(cmd string) {
		if err := app.command.Run(cmd); err != nil {
			app.flash.Errf("Command error: %v", err)
		}
	})
	app.cmdBar.SetFilterFn(app.applyFilter)
	app.cmdBar.SetCancelFn(func() {
		app.applyFilter("")
	})

	return app
}

// Init opens the active table and builds the application layout.
func (a *App) Init() error {
	a.command = NewCommand(a)
	a.cmdBar.SetCommands(a.command.Names())

	spec, ok := a.config.Gridform.ActiveTable()
	if !ok {
		return fmt.Errorf("no active table")
	}
	ds, err := dao.Open(a.ctx, a.config.Gridform.DataLocation(), a.Factory())
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	t, err := NewTable(a, spec, ds)
	if err != nil {
		return fmt.Errorf("failed to build table %q: %w", spec.Name, err)
	}
	if err := t.Init(a.ctx); err != nil {
		return err
	}
	a.table = t

	a.Content.AddListener(a.menu)
	a.Content.AddListener(a.crumbs)
	a.Content.Push(t)

	a.Main.AddPage("main", a.buildLayout(), true, true)
	a.SetRoot(a.Main, true)
	a.SetFocus(a.Content)

	return nil
}

// Run loads the table and starts the event loop.
func (a *App) Run() error {
	a.mx.Lock()
	a.running = true
	a.mx.Unlock()

	go func() {
		if err := a.table.Load(a.ctx); err != nil {
			a.log.Error("Load failed", "error", err)
			a.QueueUpdateDraw(func() {
				d := ui.ErrorDialog(a.Content, "Load failed", err.Error())
				d.SetDoneCallback(func() { a.SetFocus(a.Content) })
				d.Show()
				a.SetFocus(d)
			})
		}
	}()

	return a.Application.Run()
}

// Stop stops the application.
func (a *App) Stop() {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.cancel()
	if a.table != nil {
		a.table.Close()
	}
	a.running = false
	a.Application.Stop()
}

// IsRunning returns whether the application is currently running.
func (a *App) IsRunning() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.running
}

// Flash returns the flash message handler.
func (a *App) Flash() *Flash {
	return a.flash
}

// Prompter returns the user interaction handler.
func (a *App) Prompter() *Prompter {
	return a.prompter
}

// Keys returns the key bindings.
func (a *App) Keys() *config.KeyBindings {
	return a.keys
}

// Factory returns the remote client factory.
func (a *App) Factory() dao.Factory {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.factory
}

// SetFactory sets the remote client factory.
func (a *App) SetFactory(f dao.Factory) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.factory = f
}

// QueueUpdateDraw queues a function to be executed on the UI thread.
func (a *App) QueueUpdateDraw(fn func()) {
	go a.Application.QueueUpdateDraw(fn)
}

// SetStatus refreshes the table summary and unsaved marker.
func (a *App) SetStatus(table string, rows, dirty int) {
	a.QueueUpdateDraw(func() {
		a.cmdBar.SetStatus(table, rows, dirty)
		a.crumbs.SetDirty(dirty > 0)
	})
}

// buildLayout creates the main UI layout.
func (a *App) buildLayout() *tview.Flex {
	bottomBar := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.flash, 1, 0, false).
		AddItem(a.menu, 3, 0, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow)
	main.AddItem(a.cmdBar, 3, 0, false)
	main.AddItem(a.Content, 0, 1, true)
	if !a.config.Gridform.UI.Crumbsless {
		main.AddItem(a.crumbs, 1, 0, false)
	}
	main.AddItem(bottomBar, 4, 0, false)

	return main
}

// overlayActive returns true when a dialog, editor or help sits above the
// current page and owns the keyboard.
func (a *App) overlayActive() bool {
	name, _ := a.Content.GetFrontPage()
	top := a.Content.Top()
	return top == nil || name != top.Name()
}

// keyboard handles global keyboard events.
func (a *App) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if a.cmdBar.IsActive() || a.overlayActive() {
		return evt
	}

	key := evt.Key()
	if key == tcell.KeyRune {
		switch evt.Rune() {
		case ':':
			a.cmdBar.Activate(ui.ModeCommand)
			return nil
		case '/':
			a.cmdBar.Activate(ui.ModeFilter)
			return nil
		case '?':
			a.showHelp()
			return nil
		case 'q':
			a.quit()
			return nil
		}
	}

	switch key {
	case tcell.KeyCtrlC:
		a.Stop()
		return nil
	case tcell.KeyEsc:
		if a.cmdBar.GetFilterText() != "" {
			a.cmdBar.ClearFilter()
			a.applyFilter("")
		} else {
			a.handleEscape()
		}
		return nil
	}

	return evt
}

// quit stops the app. Unsaved changes need a second press.
func (a *App) quit() {
	if a.table != nil && a.table.Dirty() && !a.quitArm {
		a.quitArm = true
		a.flash.Warn("Unsaved changes. Press q again to quit.")
		return
	}
	a.Stop()
}

// applyFilter applies filter to the current view.
func (a *App) applyFilter(filter string) {
	if f, ok := a.Content.Top().(interface{ SetFilter(string) }); ok {
		f.SetFilter(filter)
	}
}

// showHelp displays the help screen in the content area.
func (a *App) showHelp() {
	a.help.SetCloseFn(func() {
		a.Content.HideOverlay("help")
		a.SetFocus(a.Content)
	})

	a.Content.ShowOverlay("help", a.help)
	a.SetFocus(a.help)
}

// handleEscape pops the current page.
func (a *App) handleEscape() {
	a.quitArm = false
	if _, ok := a.Content.Pop(); ok {
		a.SetFocus(a.Content)
	}
}
