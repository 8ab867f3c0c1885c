package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrDivisionByZero is the arithmetic fault behind the error display.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrOverflow is returned when a result is not a finite number.
	ErrOverflow = errors.New("result out of range")
)

// Apply is the engine's transition function. It is pure: the same state and
// event always yield the same next state.
func Apply(s State, e Event) State {
	if e.Kind == EventClear {
		return NewState()
	}
	if s.HasError() {
		return s
	}

	switch e.Kind {
	case EventDigit:
		return inputDigit(s, e.Digit)
	case EventDecimalPoint:
		return inputDecimalPoint(s)
	case EventOperator:
		return pressOperator(s, e.Operator)
	case EventEquals:
		return pressEquals(s)
	case EventToggleSign:
		return display(s, -s.Value())
	case EventPercent:
		return percent(s)
	}

	return s
}

// ApplyAll folds events over s.
func ApplyAll(s State, events ...Event) State {
	for _, e := range events {
		s = Apply(s, e)
	}
	return s
}

func inputDigit(s State, d byte) State {
	if d > 9 {
		return s
	}
	digit := string('0' + d)

	if s.AwaitingOperand {
		s.Display = digit
		s.AwaitingOperand = false
		return s
	}

	if s.Display == "0" {
		s.Display = digit
	} else {
		s.Display += digit
	}
	if !finiteDisplay(s.Display) {
		return errorState()
	}
	return s
}

// finiteDisplay reports whether d parses to a finite float64. Entry
// past the float64 range would otherwise read back as zero.
func finiteDisplay(d string) bool {
	v, err := strconv.ParseFloat(d, 64)
	return err == nil && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func inputDecimalPoint(s State) State {
	if s.AwaitingOperand {
		s.Display = "0."
		s.AwaitingOperand = false
		return s
	}

	if !strings.Contains(s.Display, ".") {
		s.Display += "."
	}
	return s
}

func pressOperator(s State, op Operator) State {
	if !op.Valid() {
		return s
	}

	switch {
	case s.Operator == "":
		// Nothing typed yet: keep the operator pending without capturing
		// the placeholder zero as a left operand.
		if !s.pristine() {
			s.StoredOperand = floatPtr(s.Value())
		}
	case s.AwaitingOperand:
		// Repeated operator press before a new operand only swaps the op.
	default:
		s = evaluate(s)
		if s.HasError() {
			return s
		}
	}

	s.Operator = op
	s.AwaitingOperand = true
	return s
}

func pressEquals(s State) State {
	if s.Operator == "" {
		return s
	}

	s = evaluate(s)
	if s.HasError() {
		return s
	}
	s.AwaitingOperand = true
	return s
}

func percent(s State) State {
	if stored, ok := s.Stored(); ok && s.Operator != "" {
		return display(s, stored*s.Value()/100)
	}
	return display(s, s.Value()/100)
}

// evaluate combines the stored operand with the display using the pending
// operator. An unset stored operand counts as zero.
func evaluate(s State) State {
	left, _ := s.Stored()

	result, err := compute(left, s.Value(), s.Operator)
	if err != nil {
		return errorState()
	}

	s.Display = Format(result)
	s.StoredOperand = floatPtr(result)
	s.Operator = ""
	return s
}

func compute(a, b float64, op Operator) (float64, error) {
	var result float64

	switch op {
	case OpAdd:
		result = a + b
	case OpSubtract:
		result = a - b
	case OpMultiply:
		result = a * b
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		result = a / b
	default:
		return b, nil
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, ErrOverflow
	}
	return result, nil
}

// display replaces the display with v, entering the error state when v is
// not finite.
func display(s State, v float64) State {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return errorState()
	}
	s.Display = Format(v)
	return s
}

func errorState() State {
	return State{Display: ErrorDisplay}
}
