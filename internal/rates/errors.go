package rates

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBaseNode is returned when Add is called without a base node.
	ErrNoBaseNode = errors.New("select a base node first")
	// ErrInvalidFPS is returned for a target rate that is not a positive number.
	ErrInvalidFPS = errors.New("target refresh rate must be a positive number")
	// ErrUnchanged is returned when Modify is asked for the node's current rate.
	ErrUnchanged = errors.New("new refresh rate equals the current one")
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled")
)

// ParseError reports scan output that carried no usable JSON table.
type ParseError struct {
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("scan failed: %v (output: %q)", e.Err, e.Snippet)
}

func (e *ParseError) Unwrap() error { return e.Err }

// PartialError reports a Modify whose new node was added but whose old
// node could not be removed. Both nodes now exist and need manual cleanup.
type PartialError struct {
	Node     string
	NewFPS   string
	Response string
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("modify partially completed: %s Hz node added but old node %s was not removed:\n%s",
		e.NewFPS, e.Node, e.Response)
}
