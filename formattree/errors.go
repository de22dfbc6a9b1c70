package formattree

import "errors"

// Sentinel errors
var (
	// ErrDuplicateName indicates a name declared twice while renaming.
	ErrDuplicateName = errors.New("formattree: name declared twice")
	// ErrOutOfNames indicates renaming ran out of fresh names.
	ErrOutOfNames = errors.New("formattree: out of names")
	// ErrUnknownNode indicates a node kind outside Item, Newline, Sequence and Loop.
	ErrUnknownNode = errors.New("formattree: unknown node")
	// ErrInvalidDocument indicates an encoded tree that cannot be decoded.
	ErrInvalidDocument = errors.New("formattree: invalid document")
)
