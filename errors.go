package bimap

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned by AtLeft and AtRight for a key that is not
	// stored.
	ErrNotFound = errors.New("no element with such key")

	// ErrInvalidIterator marks the misuse of an iterator: dereferencing or
	// erasing end, stepping past either end, or using an iterator whose
	// element has been erased. Erase methods return it; iterator methods
	// panic with it.
	ErrInvalidIterator = errors.New("invalid iterator")

	ErrEndIterator     = errors.WithMessage(ErrInvalidIterator, "iterator is at end")
	ErrOutOfRange      = errors.WithMessage(ErrInvalidIterator, "iterator moved out of range")
	ErrStaleIterator   = errors.WithMessage(ErrInvalidIterator, "iterator refers to an erased element")
	ErrForeignIterator = errors.WithMessage(ErrInvalidIterator, "iterator belongs to another bimap")
)
