package value

import "fmt"

// Mode selects which rate a view is ranked or averaged by.
type Mode string

const (
	ModeSettled    Mode = "settled"
	ModeConversion Mode = "conversion"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeSettled, ModeConversion:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

func (m Mode) String() string {
	return string(m)
}

// RollingAverageMode picks how leading chart points without a full window of
// history are reported.
type RollingAverageMode string

const (
	// RollingAlwaysDefined always yields a number; early points are biased
	// low because the divisor is the full window.
	RollingAlwaysDefined RollingAverageMode = "always-defined"
	// RollingFullWindowOnly yields no value until windowDays of history
	// have elapsed.
	RollingFullWindowOnly RollingAverageMode = "full-window-only"
)

func ParseRollingAverageMode(s string) (RollingAverageMode, error) {
	switch m := RollingAverageMode(s); m {
	case RollingAlwaysDefined, RollingFullWindowOnly:
		return m, nil
	default:
		return "", fmt.Errorf("unknown rolling average mode %q", s)
	}
}

func (m RollingAverageMode) String() string {
	return string(m)
}
