package model

import "time"

// Session status constants.
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// validTransitions maps each status to the set of statuses it may transition to.
var validTransitions = map[string]map[string]bool{
	StatusActive: {
		StatusClosed: true,
	},
}

// ValidTransition reports whether transitioning from one status to another is allowed.
func ValidTransition(from, to string) bool {
	targets, ok := validTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// Display holds the three fields a keypad front end renders.
type Display struct {
	Input       string `json:"input"`
	Accumulator string `json:"accumulator"`
	Operator    string `json:"operator"`
}

// Session is a persisted calculator. Operator holds the pending operator's
// display symbol, empty when nothing is pending.
type Session struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	Input       string     `json:"input"`
	Accumulator string     `json:"accumulator"`
	Operator    string     `json:"operator"`
	StartFresh  bool       `json:"start_fresh"`
	Presses     int        `json:"presses"`
	Failures    int        `json:"failures"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

// Display returns the session's rendered fields.
func (s *Session) Display() Display {
	return Display{
		Input:       s.Input,
		Accumulator: s.Accumulator,
		Operator:    s.Operator,
	}
}
