package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pricerider/engine"
	"github.com/lixenwraith/pricerider/input"
	"github.com/lixenwraith/pricerider/render"
)

// Menu actions
type action uint8

const (
	actionStart action = iota
	actionResume
	actionRestart
	actionMainMenu
	actionQuit
)

type menuEntry struct {
	label  string
	action action
	track  string
}

// host routes terminal input to the game and builds the menu overlays
type host struct {
	game    *engine.Game
	keys    *input.KeyTable
	machine *input.Machine

	selected  int
	lastPhase engine.GamePhase
	quit      bool
}

func newHost(game *engine.Game, keys *input.KeyTable) *host {
	return &host{
		game:      game,
		keys:      keys,
		machine:   input.NewMachine(),
		lastPhase: game.Phase(),
	}
}

// context returns the key context for the current phase
func (h *host) context() input.Context {
	if h.game.Phase() == engine.PhasePlaying {
		return input.ContextDrive
	}
	return input.ContextMenu
}

// handleEvent records one terminal event; phase actions apply on the next frame
func (h *host) handleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		h.machine.Press(h.keys.Resolve(h.context(), ev), now)
	case *tcell.EventFocus:
		h.game.SetVisible(ev.Focused)
	}
}

// frame applies pending edges and advances the simulation by dt seconds
func (h *host) frame(now time.Time, dt float64) {
	for _, intent := range h.machine.TakeEdges() {
		h.apply(intent)
	}
	h.syncPhase()
	h.game.Step(dt, h.machine.Snapshot(now))
	h.syncPhase()
}

// syncPhase drops stale input when the phase changes
func (h *host) syncPhase() {
	if p := h.game.Phase(); p != h.lastPhase {
		h.machine.Clear()
		h.selected = 0
		h.lastPhase = p
	}
}

func (h *host) apply(intent input.Intent) {
	if intent == input.IntentQuit {
		h.quit = true
		return
	}

	phase := h.game.Phase()
	if phase == engine.PhasePlaying {
		if intent == input.IntentPause {
			h.check(h.game.PauseGame())
		}
		return
	}

	entries := h.entries()
	switch intent {
	case input.IntentUp:
		h.selected = (h.selected - 1 + len(entries)) % len(entries)
	case input.IntentDown:
		h.selected = (h.selected + 1) % len(entries)
	case input.IntentConfirm:
		h.activate(entries[h.selected])
	case input.IntentBack, input.IntentPause:
		switch phase {
		case engine.PhasePaused:
			h.check(h.game.ResumeGame())
		case engine.PhaseGameOver:
			h.check(h.game.BackToMenu())
		}
	}
}

func (h *host) activate(e menuEntry) {
	switch e.action {
	case actionStart:
		if err := h.game.SelectTrack(e.track); err != nil {
			h.check(err)
			return
		}
		h.check(h.game.StartGame())
	case actionResume:
		h.check(h.game.ResumeGame())
	case actionRestart:
		h.check(h.game.RestartGame())
	case actionMainMenu:
		h.check(h.game.BackToMenu())
	case actionQuit:
		h.quit = true
	}
}

// check logs rejected actions; they leave the game unchanged
func (h *host) check(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, engine.ErrInvalidTransition) || errors.Is(err, engine.ErrUnknownTrack) {
		log.Printf("[HOST] ignored action: %v", err)
		return
	}
	log.Printf("[HOST] action failed: %v", err)
}

// entries returns the menu for the current phase; empty while driving
func (h *host) entries() []menuEntry {
	switch h.game.Phase() {
	case engine.PhaseMenu:
		catalog := h.game.Catalog()
		out := make([]menuEntry, 0, catalog.Len()+1)
		for _, id := range catalog.IDs() {
			series, _ := catalog.Lookup(id)
			out = append(out, menuEntry{
				label:  fmt.Sprintf("%-5s %-10s %3d samples", series.ID, series.Name, series.Len()),
				action: actionStart,
				track:  id,
			})
		}
		return append(out, menuEntry{label: "Quit", action: actionQuit})
	case engine.PhasePaused:
		return []menuEntry{
			{label: "Resume", action: actionResume},
			{label: "Restart", action: actionRestart},
			{label: "Main menu", action: actionMainMenu},
			{label: "Quit", action: actionQuit},
		}
	case engine.PhaseGameOver:
		return []menuEntry{
			{label: "Restart", action: actionRestart},
			{label: "Main menu", action: actionMainMenu},
			{label: "Quit", action: actionQuit},
		}
	}
	return nil
}

// menu builds the overlay for the current phase, nil while driving
func (h *host) menu() *render.Menu {
	entries := h.entries()
	if len(entries) == 0 {
		return nil
	}
	m := &render.Menu{Selected: h.selected, Hint: "↑↓ select  enter confirm  q quit"}
	switch h.game.Phase() {
	case engine.PhaseMenu:
		m.Title = "PRICERIDER · pick a chart"
	case engine.PhasePaused:
		m.Title = "PAUSED"
	case engine.PhaseGameOver:
		m.Title = fmt.Sprintf("RUN OVER · %s · PF %s", h.game.Reason(), h.game.Portfolio().StringFixed(2))
	}
	for _, e := range entries {
		m.Items = append(m.Items, e.label)
	}
	return m
}
