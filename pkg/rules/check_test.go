package rules

import (
	"errors"
	"testing"
)

func TestResolveCheck(t *testing.T) {
	tests := []struct {
		name  string
		value int
		roll  int
		want  CheckResult
	}{
		{"critical", 60, 1, ResultCriticalSuccess},
		{"extreme", 60, 12, ResultExtremeSuccess},
		{"hard", 60, 30, ResultHardSuccess},
		{"regular", 60, 31, ResultRegularSuccess},
		{"regular at value", 60, 60, ResultRegularSuccess},
		{"failure", 60, 61, ResultFailure},
		{"high roll with high skill fails", 60, 97, ResultFailure},
		{"high roll with low skill fumbles", 40, 96, ResultFumble},
		{"95 with low skill fails", 40, 95, ResultFailure},
		{"hundred fumbles", 99, 100, ResultFumble},
		{"critical on impossible value", 0, 1, ResultCriticalSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveCheck(tt.value, tt.roll)
			if err != nil {
				t.Fatalf("ResolveCheck() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveCheck(%d, %d) = %v, want %v", tt.value, tt.roll, got, tt.want)
			}
		})
	}
}

func TestResolveCheck_InvalidRoll(t *testing.T) {
	for _, roll := range []int{0, -3, 101} {
		if _, err := ResolveCheck(50, roll); !errors.Is(err, ErrInvalidRoll) {
			t.Errorf("ResolveCheck(50, %d) error = %v, want ErrInvalidRoll", roll, err)
		}
	}
}

func TestCheckResult_Succeeded(t *testing.T) {
	if ResultFailure.Succeeded() || ResultFumble.Succeeded() {
		t.Error("failures should not succeed")
	}
	if !ResultRegularSuccess.Succeeded() || !ResultCriticalSuccess.Succeeded() {
		t.Error("successes should succeed")
	}
}
