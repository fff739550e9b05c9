package skipkv

import "errors"

var (
	// ErrInvalidMaxLevel is returned when a list is constructed with a
	// non-positive level ceiling.
	ErrInvalidMaxLevel = errors.New("max level must be greater than zero")

	// ErrNilComparator is returned by NewWithComparator when no ordering
	// function is supplied.
	ErrNilComparator = errors.New("comparator cannot be nil")

	// ErrInvalidDelimiter is returned when the configured record delimiter is
	// not exactly one character or is a line break.
	ErrInvalidDelimiter = errors.New("delimiter must be a single non-newline character")

	// ErrCodecMismatch is returned when WithCodec was given a codec for other
	// key/value types than the list being built.
	ErrCodecMismatch = errors.New("codec does not match the list key/value types")

	// ErrNoCodec is returned by the persistence operations when the key or
	// value type has no text form and no codec was configured.
	ErrNoCodec = errors.New("no codec for key/value type")

	// ErrInvalidRecord is returned by Dump when a record cannot be written in
	// a form Load would read back: the key or value is empty, the key
	// contains the delimiter, or the key or value contains a line break.
	ErrInvalidRecord = errors.New("record cannot be persisted")

	// ErrClosed is returned by Close on an already closed list. Any other
	// operation on a closed list panics with it.
	ErrClosed = errors.New("skip list is closed")
)
