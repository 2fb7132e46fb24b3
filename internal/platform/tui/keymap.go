package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tower/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "left", "a", "h":
		return core.ActionLeft, false
	case "right", "d", "l":
		return core.ActionRight, false
	case " ", "space", "w", "up", "k":
		return core.ActionJump, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ", "space":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// Hold windows for HeldKeys. Terminals report key presses and auto-repeats
// but never releases, so a key counts as held for a while after each event.
// The first press has to bridge the terminal's auto-repeat delay.
const (
	DefaultInitialHold = 500 * time.Millisecond
	DefaultRepeatHold  = 120 * time.Millisecond
)

// HeldKeys turns a stream of key presses into a per-tick set of held intents.
// Movement and jump are held until their window expires; pause, restart and
// confirm are delivered exactly once.
type HeldKeys struct {
	InitialHold time.Duration
	RepeatHold  time.Duration

	until   map[core.Action]time.Time
	pending core.InputFrame
}

// NewHeldKeys creates a tracker with the default hold windows.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{
		InitialHold: DefaultInitialHold,
		RepeatHold:  DefaultRepeatHold,
		until:       make(map[core.Action]time.Time),
		pending:     core.NewInputFrame(),
	}
}

func isHoldable(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight || a == core.ActionJump
}

// Press records a key press at now.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	if !isHoldable(a) {
		h.pending.Set(a)
		return
	}

	hold := h.InitialHold
	if h.held(a, now) {
		hold = h.RepeatHold
	}
	h.until[a] = now.Add(hold)

	// Only the most recent direction repeats, so the other one was released
	switch a {
	case core.ActionLeft:
		delete(h.until, core.ActionRight)
	case core.ActionRight:
		delete(h.until, core.ActionLeft)
	}
}

func (h *HeldKeys) held(a core.Action, now time.Time) bool {
	t, ok := h.until[a]
	return ok && now.Before(t)
}

// Frame returns the intents active at now and consumes one-shot actions.
func (h *HeldKeys) Frame(now time.Time) core.InputFrame {
	frame := h.pending.Clone()
	h.pending.Clear()

	for a := range h.until {
		if h.held(a, now) {
			frame.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	return frame
}

// Release drops every held key, used when a run starts or restarts.
func (h *HeldKeys) Release() {
	for a := range h.until {
		delete(h.until, a)
	}
}
