package alert

import "strings"

// State classifies the outcome of a single alert check.
type State string

const (
	StateOK       State = "OK"
	StateWarning  State = "WARNING"
	StateCritical State = "CRITICAL"
	StateUnknown  State = "UNKNOWN"
)

// ParseState maps a raw status string onto a State, case-insensitively.
// Anything unrecognized comes back as UNKNOWN.
func ParseState(s string) State {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OK":
		return StateOK
	case "WARNING":
		return StateWarning
	case "CRITICAL":
		return StateCritical
	default:
		return StateUnknown
	}
}

func (s State) String() string {
	return string(s)
}
