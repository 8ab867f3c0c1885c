package calculator

import (
	"errors"
	"fmt"
)

// EventKind identifies a calculator input.
type EventKind int

const (
	EventDigit EventKind = iota + 1
	EventDecimalPoint
	EventOperator
	EventEquals
	EventClear
	EventToggleSign
	EventPercent
)

// Event is a single input to the engine. Digit is set for EventDigit and
// Operator for EventOperator.
type Event struct {
	Kind     EventKind
	Digit    byte
	Operator Operator
}

// Digit returns the event for pressing digit key d (0-9).
func Digit(d byte) Event { return Event{Kind: EventDigit, Digit: d} }

// Press returns the event for pressing operator key op.
func Press(op Operator) Event { return Event{Kind: EventOperator, Operator: op} }

// DecimalPoint returns the event for pressing the decimal point.
func DecimalPoint() Event { return Event{Kind: EventDecimalPoint} }

// Equals returns the event for pressing equals.
func Equals() Event { return Event{Kind: EventEquals} }

// Clear returns the event that resets the session.
func Clear() Event { return Event{Kind: EventClear} }

// ToggleSign returns the event that negates the display.
func ToggleSign() Event { return Event{Kind: EventToggleSign} }

// Percent returns the event for pressing the percent key.
func Percent() Event { return Event{Kind: EventPercent} }

func (e Event) String() string {
	switch e.Kind {
	case EventDigit:
		return string('0' + e.Digit)
	case EventDecimalPoint:
		return "."
	case EventOperator:
		return string(e.Operator)
	case EventEquals:
		return "="
	case EventClear:
		return "clear"
	case EventToggleSign:
		return "±"
	case EventPercent:
		return "%"
	}
	return fmt.Sprintf("event(%d)", int(e.Kind))
}

// ErrUnknownKey is returned by ParseKey for keys with no calculator meaning.
var ErrUnknownKey = errors.New("unknown key")

// ParseKey maps a button label or keyboard key name to an Event.
func ParseKey(key string) (Event, error) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return Digit(key[0] - '0'), nil
	}

	switch key {
	case "+":
		return Press(OpAdd), nil
	case "-", "−":
		return Press(OpSubtract), nil
	case "*", "×", "x":
		return Press(OpMultiply), nil
	case "/", "÷":
		return Press(OpDivide), nil
	case "=", "Enter":
		return Equals(), nil
	case ".", ",":
		return DecimalPoint(), nil
	case "%":
		return Percent(), nil
	case "±", "+/-", "neg":
		return ToggleSign(), nil
	case "Escape", "Backspace", "C", "c", "AC":
		return Clear(), nil
	}

	return Event{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}
