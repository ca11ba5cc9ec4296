package repositories

import "errors"

var (
	// ErrInputNotFound is returned when no input file matches a pattern
	ErrInputNotFound = errors.New("input file not found")
	// ErrAmbiguousInput is returned when more than one input file matches a pattern
	ErrAmbiguousInput = errors.New("more than one input file matches")
	// ErrMissingColumn is returned when a required header is absent
	ErrMissingColumn = errors.New("required column missing")
	// ErrUnsupportedFormat is returned for file types no loader can read
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrRowNotFound is returned for an unknown row position
	ErrRowNotFound = errors.New("inventory row not found")
)
