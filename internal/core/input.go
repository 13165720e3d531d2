package core

import "strings"

// Button is one logical input the game reacts to.
type Button uint8

// Logical buttons polled from the platform once per frame.
const (
	ButtonSelect Button = 1 << iota
	ButtonBack
	ButtonQuit
	ButtonLeft
	ButtonRight
)

// String returns a human-readable name for the button.
func (b Button) String() string {
	switch b {
	case ButtonSelect:
		return "Select"
	case ButtonBack:
		return "Back"
	case ButtonQuit:
		return "Quit"
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Buttons is the set of buttons held during a frame.
type Buttons uint8

// Has reports whether b is in the set.
func (s Buttons) Has(b Button) bool {
	return s&Buttons(b) != 0
}

// With returns the set with b added.
func (s Buttons) With(b Button) Buttons {
	return s | Buttons(b)
}

// Any reports whether any button is held.
func (s Buttons) Any() bool {
	return s != 0
}

// String lists the held buttons, e.g. "Left|Select".
func (s Buttons) String() string {
	if s == 0 {
		return "None"
	}
	var names []string
	for _, b := range []Button{ButtonSelect, ButtonBack, ButtonQuit, ButtonLeft, ButtonRight} {
		if s.Has(b) {
			names = append(names, b.String())
		}
	}
	return strings.Join(names, "|")
}

// Input is what a state sees for one frame: the buttons currently held and
// the ones that went down since the previous frame.
type Input struct {
	Held    Buttons
	Pressed Buttons
}

// NextInput derives this frame's Input from the previous held set.
func NextInput(prev, held Buttons) Input {
	return Input{
		Held:    held,
		Pressed: held &^ prev,
	}
}
