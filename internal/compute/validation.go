package compute

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Accepted range for the number argument.
const (
	MinNumber = 0
	MaxNumber = 1000
)

const (
	msgInvalidOperation = "Invalid operation"
	msgInvalidNumber    = "Number must be an integer between 0 and 1000"
	msgInvalidBody      = "Request body must be a JSON object"
	msgNoZerothPrime    = "Number must be at least 1 for nthPrime"
)

// Request is a validated compute request.
type Request struct {
	Operation Operation
	Number    int
}

// FieldError describes one violated constraint on a request field.
type FieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// ValidationError lists every constraint a request violated.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Path+": "+fe.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func fieldError(path, msg string, value any) FieldError {
	return FieldError{
		Type:     "field",
		Value:    value,
		Msg:      msg,
		Path:     path,
		Location: "body",
	}
}

type rawRequest struct {
	Operation json.RawMessage `json:"operation"`
	Number    json.RawMessage `json:"number"`
}

// DecodeRequest reads and validates a JSON compute request. Any violation is
// reported as a *ValidationError.
func DecodeRequest(r io.Reader) (Request, error) {
	var raw rawRequest
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Request{}, &ValidationError{Errors: []FieldError{
			fieldError("body", msgInvalidBody, nil),
		}}
	}
	return Validate(raw.Operation, raw.Number)
}

// Validate checks the raw operation and number fields, collecting all
// violations rather than stopping at the first.
func Validate(operation, number json.RawMessage) (Request, error) {
	var (
		req  Request
		errs []FieldError
	)

	opValue := decodeValue(operation)
	name, _ := opValue.(string)
	op, ok := ParseOperation(name)
	if !ok {
		errs = append(errs, fieldError("operation", msgInvalidOperation, opValue))
	}
	req.Operation = op

	numValue := decodeValue(number)
	n, ok := parseNumber(numValue)
	if !ok || n < MinNumber || n > MaxNumber {
		errs = append(errs, fieldError("number", msgInvalidNumber, numValue))
	}
	req.Number = int(n)

	if len(errs) > 0 {
		return Request{}, &ValidationError{Errors: errs}
	}
	return req, nil
}

// ValidateRequest checks an already-typed request, as built by callers that
// do not go through JSON.
func ValidateRequest(operation string, number int) (Request, error) {
	opJSON, _ := json.Marshal(operation)
	return Validate(opJSON, json.RawMessage(strconv.Itoa(number)))
}

func decodeValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// parseNumber accepts JSON integers, integral floats and integer strings.
func parseNumber(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, true
		}
		f, err := x.Float64()
		if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, false
		}
		return int64(f), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// ComputationError is an unexpected fault inside a compute function.
type ComputationError struct {
	Operation Operation
	Err       error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computing %s: %v", e.Operation, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}
