package input

import (
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

// EventKind distinguishes the events a backend reports for a tick.
type EventKind int

const (
	EventNone EventKind = iota
	EventKeyDown
	EventMouseDown
	EventQuit
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	ButtonPrimary MouseButton = iota
	ButtonSecondary
	ButtonMiddle
)

// RawInput is the 1st-layer event emitted directly from a backend.
// Code is the backend's native key name before translation.
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// Event is a translated, backend-neutral input event.
type Event struct {
	Kind   EventKind
	Device Device
	Key    Key         // EventKeyDown
	Button MouseButton // EventMouseDown
	X, Y   int         // pointer position in screen pixels (or cells for terminals)
}

// KeyDown builds a key-down event
func KeyDown(k Key) Event {
	return Event{Kind: EventKeyDown, Device: DeviceKeyboard, Key: k}
}

// Click builds a primary-button-down event at (x, y)
func Click(x, y int) Event {
	return Event{Kind: EventMouseDown, Device: DeviceMouse, Button: ButtonPrimary, X: x, Y: y}
}

// Quit builds a window-close / interrupt event
func Quit() Event {
	return Event{Kind: EventQuit}
}

// IsPrimaryClick reports whether the event is a primary-button press
func (e Event) IsPrimaryClick() bool {
	return e.Kind == EventMouseDown && e.Button == ButtonPrimary
}

// Translate is the 2nd layer: it maps a raw backend code through a static
// table to a key-down event. Unknown codes yield EventNone.
func Translate(raw RawInput, table map[string]Key) Event {
	k, ok := table[raw.Code]
	if !ok {
		return Event{Kind: EventNone, Device: raw.Device}
	}
	return Event{Kind: EventKeyDown, Device: raw.Device, Key: k}
}

// Frame is everything a backend observed during one tick.
type Frame struct {
	Events []Event

	// Pointer position in screen pixels
	MouseX, MouseY int

	// Held reports whether a key is currently down; nil means nothing is held
	Held func(Key) bool

	// Elapsed time since the previous tick
	DT time.Duration
}

// IsHeld reports whether k is down during this frame
func (f Frame) IsHeld(k Key) bool {
	return f.Held != nil && f.Held(k)
}
