// Package tray renders the system-tray icon with the toggle and quit menu.
// When no StatusNotifier host is available the icon is simply absent and the
// rest of the daemon is unaffected.
package tray

import (
	_ "embed"
	"fmt"

	"fyne.io/systray"
)

//go:embed assets/icon_enabled.png
var iconEnabled []byte

//go:embed assets/icon_disabled.png
var iconDisabled []byte

// Controller is the slice of the dispatcher the tray needs: the shared
// enabled flag.
type Controller interface {
	Toggle() bool
	IsEnabled() bool
}

type Options struct {
	Controller Controller
	// OnQuit fires when the user picks Quit from the menu.
	OnQuit func()
}

// Run blocks until the user quits from the menu or Stop is called.
func Run(opts Options) error {
	if opts.Controller == nil {
		return fmt.Errorf("controller is nil")
	}
	systray.Run(func() { onReady(opts) }, func() {
		if opts.OnQuit != nil {
			opts.OnQuit()
		}
	})
	return nil
}

// Stop tears the tray icon down and unblocks Run.
func Stop() {
	systray.Quit()
}

func onReady(opts Options) {
	enabled := opts.Controller.IsEnabled()
	applyState(enabled)

	toggle := systray.AddMenuItem(toggleLabel(enabled), "Toggle the click sound")
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Exit clickd")

	go func() {
		for {
			select {
			case <-toggle.ClickedCh:
				enabled := opts.Controller.Toggle()
				applyState(enabled)
				toggle.SetTitle(toggleLabel(enabled))
			case <-quit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

func applyState(enabled bool) {
	if enabled {
		systray.SetIcon(iconEnabled)
	} else {
		systray.SetIcon(iconDisabled)
	}
	systray.SetTitle(stateTitle(enabled))
	systray.SetTooltip(stateTitle(enabled))
}

func stateTitle(enabled bool) string {
	if enabled {
		return "clickd - enabled (click to disable)"
	}
	return "clickd - disabled (click to enable)"
}

func toggleLabel(enabled bool) string {
	if enabled {
		return "Disable clicking"
	}
	return "Enable clicking"
}
