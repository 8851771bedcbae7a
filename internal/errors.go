package internal

import (
	"errors"
)

// Usage errors reported by the command line layer.
var (
	ErrInvalidLength = errors.New("Invalid parameter was specified for the len in the -n option")
	ErrAmbiguousFile = errors.New("More than one file name was specified")
	ErrNoFile        = errors.New("No file name was specified")
	ErrInvalidEndian = errors.New("invalid byte order, expected auto/little/big")
)
