package calculator

import (
	"math"
	"strconv"
	"strings"
)

// Format renders v the way the display shows numbers: the shortest decimal
// digits that round-trip to v, in plain notation for 1e-6 <= |v| < 1e21 and
// exponent notation ("1e+21", "1.5e-7") outside that range. Negative zero is
// rendered as "0".
func Format(v float64) string {
	if v == 0 {
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}

	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
