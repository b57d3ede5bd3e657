package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// One key may trigger several actions; each game reads the ones it knows,
// so Space is a hard drop in Tetris, a token drop in Connect Four and a
// flap in Flappy Bird.
type KeyMapper struct {
	bindings map[string][]core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{bindings: map[string][]core.Action{
		"left":  {core.ActionLeft},
		"a":     {core.ActionLeft},
		"h":     {core.ActionLeft},
		"right": {core.ActionRight},
		"d":     {core.ActionRight},
		"l":     {core.ActionRight},
		"up":    {core.ActionUp, core.ActionRotate, core.ActionJump},
		"w":     {core.ActionUp, core.ActionRotate, core.ActionJump},
		"x":     {core.ActionRotate},
		"z":     {core.ActionRotateCCW},
		"down":  {core.ActionDown},
		"s":     {core.ActionDown},
		"j":     {core.ActionDown},
		" ":     {core.ActionHardDrop, core.ActionDrop, core.ActionJump},
		"enter": {core.ActionConfirm, core.ActionDrop},
		"c":     {core.ActionHold},
		"u":     {core.ActionUndo},
		"p":     {core.ActionPause},
		"r":     {core.ActionRestart},
		"b":     {core.ActionBack},
		"esc":   {core.ActionBack, core.ActionPause},
	}}
}

// MapKey returns the actions bound to a key and whether it is a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	}
	return km.bindings[msg.String()], false
}

// MapKeyToFrame adds the key's actions to frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	actions, isQuit := km.MapKey(msg)
	for _, a := range actions {
		frame.Set(a)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
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
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
