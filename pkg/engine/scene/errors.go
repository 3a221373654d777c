package scene

import "errors"

var (
	// ErrBadCondition is returned for transition conditions that do not parse
	ErrBadCondition = errors.New("scene: invalid condition")

	// ErrAutoCascade is returned when automatic transitions chain past the cascade limit
	ErrAutoCascade = errors.New("scene: auto transition cascade too long")

	// ErrNoStartState is returned when a machine is created without a start state
	ErrNoStartState = errors.New("scene: no start state")
)
