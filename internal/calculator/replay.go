package calculator

import "fmt"

// Step records the display after one replayed key.
type Step struct {
	Key     string `json:"key"`
	Display string `json:"display"`
}

// Replay parses and applies keys in order, starting from s. On an unknown key
// it returns the state reached so far together with the error.
func Replay(s State, keys []string) (State, []Step, error) {
	steps := make([]Step, 0, len(keys))

	for i, key := range keys {
		e, err := ParseKey(key)
		if err != nil {
			return s, steps, fmt.Errorf("key %d: %w", i, err)
		}

		s = Apply(s, e)
		steps = append(steps, Step{Key: key, Display: s.Display})
	}

	return s, steps, nil
}
