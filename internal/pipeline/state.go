package pipeline

import "fmt"

// State is the orchestration phase of a publish run. States are strictly
// ordered with no re-entrancy; any failure lands in the terminal Failed
// state with no rollback.
type State int

const (
	StatePending State = iota
	StateInstalling
	StateAuthenticating
	StatePushing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateInstalling:
		return "INSTALLING"
	case StateAuthenticating:
		return "AUTHENTICATING"
	case StatePushing:
		return "PUSHING"
	case StateDone:
		return "DONE"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsTerminal reports whether the run has finished.
func IsTerminal(s State) bool {
	return s == StateDone || s == StateFailed
}

func isAllowedTransition(from, to State) bool {
	if to == StateFailed {
		return from == StateInstalling || from == StateAuthenticating || from == StatePushing
	}
	switch from {
	case StatePending:
		return to == StateInstalling
	case StateInstalling:
		return to == StateAuthenticating
	case StateAuthenticating:
		return to == StatePushing
	case StatePushing:
		return to == StateDone
	default:
		return false
	}
}
