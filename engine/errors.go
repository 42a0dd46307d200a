package engine

import "errors"

var (
	// ErrAlreadyBorrowed is the panic value raised in ModeSingleOwner when a
	// node is accessed exclusively while another exclusive access to the same
	// node is outstanding. It indicates a malformed graph, not a recoverable
	// condition.
	ErrAlreadyBorrowed = errors.New("value already borrowed")

	// ErrMissingRule is the panic value raised when the backward pass reaches
	// a node that has parents but no backward rule and has never propagated.
	// Such a node cannot exist through the public constructors.
	ErrMissingRule = errors.New("non-leaf value has no backward rule")
)
