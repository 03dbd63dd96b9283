package tree

import "errors"

// Errors returned by Document operations. A failed operation leaves the tree
// unchanged.
var (
	ErrNotFound        = errors.New("tree: node not found")
	ErrInvalidTarget   = errors.New("tree: invalid target")
	ErrInvalidOperands = errors.New("tree: invalid operands")
	ErrCycleDetected   = errors.New("tree: move would create a cycle")
	ErrEmptyTitle      = errors.New("tree: title is empty")
	ErrInvalidTitle    = errors.New("tree: invalid title")
	ErrIndexOutOfRange = errors.New("tree: index out of range")
	ErrDuplicateID     = errors.New("tree: duplicate id")
)
