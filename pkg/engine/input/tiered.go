// Package input turns device events into high-level intents in four layers:
// raw device codes, debounced input, bindings and intents.
package input

import (
	"sort"
	"strings"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceMouse
	DeviceTerminal
)

// Action represents a high-level intent for the animation host.
type Action int

const (
	ActionNone Action = iota

	ActionQuit
	ActionTogglePause
	ActionOpenLink
)

// Intent is the 4th-layer, high-level description of what the user wants.
type Intent struct {
	Action Action
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "q", "escape", "mouse_left_badge").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after debouncing.
// Both backends already deliver edge-triggered events, so this is a thin
// normalisation step (lower-cased codes).
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   strings.ToLower(raw.Code),
	}
}

// reserved codes can never be rebound away from their action.
var reserved = map[string]Action{
	"ctrl_c":           ActionQuit,
	"mouse_left_badge": ActionOpenLink,
}

// bindings maps codes to actions (3rd layer). Several codes may share an action.
var bindings = map[string]Action{
	"q":      ActionQuit,
	"escape": ActionQuit,
	"ctrl_c": ActionQuit,

	"p":     ActionTogglePause,
	"space": ActionTogglePause,

	"o":                ActionOpenLink,
	"enter":            ActionOpenLink,
	"mouse_left_badge": ActionOpenLink,
}

// MapToIntent applies the current bindings to a debounced input.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// Resolve runs a raw event through every layer.
func Resolve(raw RawInput) Intent {
	return MapToIntent(NewDebouncedInput(raw))
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionQuit:
		return "Quit"
	case ActionTogglePause:
		return "Pause"
	case ActionOpenLink:
		return "Open Link"
	default:
		return "None"
	}
}

// ActionByName looks up an action by its config name ("quit", "pause", "open_link").
func ActionByName(name string) (Action, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "quit":
		return ActionQuit, true
	case "pause":
		return ActionTogglePause, true
	case "open_link", "link":
		return ActionOpenLink, true
	}
	return ActionNone, false
}

// GetBindingsByAction returns the current bindings grouped by action, with
// codes sorted so help text does not reshuffle between frames.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all non-reserved bindings for action with code.
func SetSingleBinding(action Action, code string) {
	code = strings.ToLower(code)
	for c, a := range bindings {
		if _, ok := reserved[c]; ok {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if _, ok := reserved[code]; code != "" && !ok {
		bindings[code] = action
	}
}
