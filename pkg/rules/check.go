package rules

import (
	"errors"
	"fmt"
)

// ErrInvalidRoll is returned for percentile rolls outside 1..100.
var ErrInvalidRoll = errors.New("roll must be between 1 and 100")

// CheckResult is the success level of a percentile check.
type CheckResult int

const (
	ResultFumble CheckResult = iota
	ResultFailure
	ResultRegularSuccess
	ResultHardSuccess
	ResultExtremeSuccess
	ResultCriticalSuccess
)

func (r CheckResult) String() string {
	switch r {
	case ResultFumble:
		return "Fumble!"
	case ResultFailure:
		return "Failure"
	case ResultRegularSuccess:
		return "Regular Success"
	case ResultHardSuccess:
		return "Hard Success"
	case ResultExtremeSuccess:
		return "Extreme Success"
	case ResultCriticalSuccess:
		return "Critical Success!"
	}
	return fmt.Sprintf("CheckResult(%d)", int(r))
}

// Succeeded reports whether the result is any level of success.
func (r CheckResult) Succeeded() bool {
	return r >= ResultRegularSuccess
}

// ResolveCheck grades a D100 roll against a skill or characteristic value.
// A 1 is a critical and a 100 a fumble. Below a value of 50, failed rolls of
// 96 and up are fumbles too. Successes are extreme at a fifth of the value
// and hard at half.
func ResolveCheck(value, roll int) (CheckResult, error) {
	if roll < 1 || roll > 100 {
		return ResultFailure, fmt.Errorf("%w: got %d", ErrInvalidRoll, roll)
	}
	switch {
	case roll == 1:
		return ResultCriticalSuccess, nil
	case roll == 100:
		return ResultFumble, nil
	case roll > value:
		if roll >= 96 && value < 50 {
			return ResultFumble, nil
		}
		return ResultFailure, nil
	case roll <= value/5:
		return ResultExtremeSuccess, nil
	case roll <= value/2:
		return ResultHardSuccess, nil
	}
	return ResultRegularSuccess, nil
}
