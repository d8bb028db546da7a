package engine

import "fmt"

// Mode selects which mirror set and DNS list a fix applies.
type Mode string

const (
	ModeNormal     Mode = "normal"
	ModeAggressive Mode = "aggressive"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNormal:
		return ModeNormal, nil
	case ModeAggressive:
		return ModeAggressive, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeNormal, ModeAggressive)
	}
}
