package game

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/into-the-hole/parameter"
)

// Mode selects the acceleration curve of a run
type Mode int

const (
	ModeEasy Mode = iota
	ModeMedium
	ModeHard
)

var modeNames = [...]string{"easy", "medium", "hard"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Acceleration returns the forward acceleration in units per second squared
func (m Mode) Acceleration() float64 {
	switch m {
	case ModeMedium:
		return parameter.AccelerationMedium
	case ModeHard:
		return parameter.AccelerationHard
	default:
		return parameter.AccelerationEasy
	}
}

// Modes lists all selectable modes in menu order
func Modes() []Mode {
	return []Mode{ModeEasy, ModeMedium, ModeHard}
}

// ParseMode accepts a mode name, case-insensitive
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(s, n) {
			return Mode(i), nil
		}
	}
	return ModeEasy, fmt.Errorf("unknown mode %q", s)
}
