package visualizer

import (
	"errors"
	"fmt"
)

type unknownModelError struct{ name string }

func (e unknownModelError) Error() string { return "unknown model: " + e.name }

// ErrUnknownModel reports a name with no registered constructor.
func ErrUnknownModel(name string) error { return unknownModelError{name: name} }

// IsUnknownModel reports whether err indicates an unregistered model name.
func IsUnknownModel(err error) bool {
	var e unknownModelError
	return errors.As(err, &e)
}

type stepNotFoundError struct {
	step StepIndex
	node int
}

func (e stepNotFoundError) Error() string {
	return fmt.Sprintf("step %d not indexed for node %d", e.step, e.node)
}

// IsStepNotFound reports whether err indicates a step missing from a node's index.
func IsStepNotFound(err error) bool {
	var e stepNotFoundError
	return errors.As(err, &e)
}
