package actor

import (
	"math"
	"strconv"
	"strings"
)

// ApplyModifier evaluates a stat edit typed by the user against the current value.
//
// Accepted forms:
//
//	+N, -N   add or subtract N (N truncated toward zero)
//	*N, /N   multiply or divide, result truncated toward zero
//	N        absolute value, canonical integer only ("007" is rejected)
//
// N in the operator forms may be fractional. The second return value is false
// when the input is empty, malformed, divides by zero or overflows; the
// caller keeps the current value in that case.
func ApplyModifier(current int, input string) (int, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, false
	}

	switch op := trimmed[0]; op {
	case '+', '-', '*', '/':
		operandText := strings.TrimSpace(trimmed[1:])
		if operandText == "" || isHexOperand(operandText) {
			return 0, false
		}
		operand, err := strconv.ParseFloat(operandText, 64)
		if err != nil || math.IsNaN(operand) || math.IsInf(operand, 0) {
			return 0, false
		}

		var result float64
		switch op {
		case '+':
			result = float64(current) + math.Trunc(operand)
		case '-':
			result = float64(current) - math.Trunc(operand)
		case '*':
			result = math.Trunc(float64(current) * operand)
		case '/':
			if operand == 0 {
				return 0, false
			}
			result = math.Trunc(float64(current) / operand)
		}
		return toInt(result)
	}

	v, err := strconv.Atoi(trimmed)
	if err != nil || strconv.Itoa(v) != trimmed {
		return 0, false
	}
	return v, true
}

func toInt(f float64) (int, bool) {
	if math.IsNaN(f) || f >= math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

// isHexOperand reports a 0x prefix, which ParseFloat would read as a hex float.
func isHexOperand(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
