package calculator

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorDisplay is shown after an arithmetic fault. Only Clear leaves it.
const ErrorDisplay = "Error"

// Operator is a pending binary operation.
type Operator string

const (
	OpAdd      Operator = "add"
	OpSubtract Operator = "subtract"
	OpMultiply Operator = "multiply"
	OpDivide   Operator = "divide"
)

// Valid reports whether o names one of the four binary operators.
func (o Operator) Valid() bool {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// State is a snapshot of one calculator session. It is a value: transitions
// return a new State and never mutate the receiver or anything it points to.
type State struct {
	Display         string   `json:"display"`
	Operator        Operator `json:"operator,omitempty"`
	StoredOperand   *float64 `json:"storedOperand,omitempty"`
	AwaitingOperand bool     `json:"awaitingOperand"`
}

// NewState returns the state a fresh session starts in.
func NewState() State {
	return State{Display: "0"}
}

// HasError reports whether the session is in the terminal error state.
func (s State) HasError() bool {
	return s.Display == ErrorDisplay
}

// Value parses the display. The error state and unparsable displays read as 0.
func (s State) Value() float64 {
	v, err := strconv.ParseFloat(s.Display, 64)
	if err != nil {
		return 0
	}
	return v
}

// Stored returns the stored operand and whether one is set.
func (s State) Stored() (float64, bool) {
	if s.StoredOperand == nil {
		return 0, false
	}
	return *s.StoredOperand, true
}

// pristine reports whether nothing has been entered since start or clear.
func (s State) pristine() bool {
	return s.Display == "0" && s.Operator == "" && s.StoredOperand == nil && !s.AwaitingOperand
}

var errInvalidState = errors.New("invalid calculator state")

// Validate checks a state received from outside the engine.
func (s State) Validate() error {
	if s.Display == "" {
		return fmt.Errorf("%w: empty display", errInvalidState)
	}
	if !s.HasError() {
		if !finiteDisplay(s.Display) {
			return fmt.Errorf("%w: display %q is not a finite number", errInvalidState, s.Display)
		}
	}
	if s.Operator != "" && !s.Operator.Valid() {
		return fmt.Errorf("%w: unknown operator %q", errInvalidState, s.Operator)
	}
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}
