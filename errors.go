package hashmap

import "errors"

// Expected operation outcomes and misuse conditions. ErrFull and
// ErrNotFound are ordinary results of normal use, not failures; callers
// are expected to branch on them with errors.Is.
var (
	// ErrFull is returned when inserting a new key into a table whose
	// slots are all occupied. Overwriting an existing key never returns
	// ErrFull, since no new slot is consumed.
	ErrFull = errors.New("hashmap: table is full")

	// ErrNotFound is returned when deleting a key that is not present.
	ErrNotFound = errors.New("hashmap: key not found")

	// ErrCapacity is returned by constructors given a capacity < 1.
	ErrCapacity = errors.New("hashmap: capacity must be positive")

	// ErrClosed is returned by DiskMap operations after Close.
	ErrClosed = errors.New("hashmap: map is closed")

	// ErrKeySize and ErrValueSize report violations of a DiskMap's fixed
	// key and value sizes.
	ErrKeySize   = errors.New("hashmap: key size mismatch")
	ErrValueSize = errors.New("hashmap: value size mismatch")

	// ErrBadMagic is returned by Open for files that were not created by
	// Create, ErrVersion for files written by an incompatible release,
	// and ErrCorrupt when the file is shorter than its header promises.
	ErrBadMagic = errors.New("hashmap: not a hashmap file")
	ErrVersion  = errors.New("hashmap: unsupported file version")
	ErrCorrupt  = errors.New("hashmap: file size does not match header")
)
