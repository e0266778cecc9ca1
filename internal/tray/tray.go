// Package tray provides a system tray interface for the signtutor practice
// application.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/signtutor/internal/pose"
	"github.com/ayusman/signtutor/internal/session"
)

// Tray shows the practice state in the system tray: the target letter,
// the latest score and its trend. It implements session.Presenter so
// score updates flow straight into the menu.
type Tray struct {
	onStop     func()
	onSettings func()
	onQuit     func()
	mu         sync.RWMutex

	// Menu items stored for later updates
	menuStop   *systray.MenuItem
	menuLetter *systray.MenuItem
	menuScore  *systray.MenuItem
}

// New creates a new Tray instance.
func New() *Tray {
	return &Tray{}
}

// OnStop sets the callback for the stop-practice menu item.
func (t *Tray) OnStop(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onStop = fn
}

// OnSettings sets the callback for the settings menu item.
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
}

// OnQuit sets the callback for the quit menu item.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("SignTutor")
	systray.SetTooltip("SignTutor Letter Practice")

	t.menuLetter = systray.AddMenuItem("Practising: none", "Current target letter")
	t.menuLetter.Disable()
	t.menuScore = systray.AddMenuItem("Score: -", "Latest score")
	t.menuScore.Disable()
	systray.AddSeparator()

	t.menuStop = systray.AddMenuItem("Stop Practice", "End the current practice session")
	systray.AddSeparator()

	menuSettings := systray.AddMenuItem("Open Dashboard...", "Open the practice dashboard in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit SignTutor")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuStop.ClickedCh:
				t.handleStop()
			case <-menuSettings.ClickedCh:
				t.handleSettings()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleStop handles the stop-practice menu item click.
func (t *Tray) handleStop() {
	t.mu.RLock()
	callback := t.onStop
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
	t.SetLetter("")
}

// handleSettings handles the settings menu item click.
func (t *Tray) handleSettings() {
	t.mu.RLock()
	callback := t.onSettings
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetLetter updates the target letter display in the menu.
func (t *Tray) SetLetter(letter string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLetter == nil {
		return
	}
	if letter == "" {
		t.menuLetter.SetTitle("Practising: none")
		if t.menuScore != nil {
			t.menuScore.SetTitle("Score: -")
		}
	} else {
		t.menuLetter.SetTitle("Practising: " + letter)
	}
}

// Present updates the score display with the latest sample.
func (t *Tray) Present(sample pose.Sample) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuScore == nil {
		return
	}
	t.menuScore.SetTitle(fmt.Sprintf("Score: %.0f (%s)", sample.Score, sample.Trend))
}

// PresentFailure updates the score display with a failure state.
func (t *Tray) PresentFailure(failure session.Failure) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuScore == nil {
		return
	}
	switch failure {
	case session.FailureNoReferenceData:
		t.menuScore.SetTitle("Score: no reference data")
	case session.FailureDegenerateInput:
		t.menuScore.SetTitle("Score: hold your hand steady")
	default:
		t.menuScore.SetTitle("Score: -")
	}
}
