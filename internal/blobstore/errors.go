package blobstore

import "errors"

// Every error returned by the store wraps exactly one of these, so callers
// can classify failures with errors.Is.
var (
	// ErrOpen covers I/O failures: opening the file, schema changes and
	// statement execution.
	ErrOpen = errors.New("store unavailable")

	// ErrEncode indicates a payload could not be serialized.
	ErrEncode = errors.New("encode failed")

	// ErrDecode indicates a stored payload is corrupt or does not match the
	// requested type.
	ErrDecode = errors.New("decode failed")

	// ErrNoSuchAnalysis indicates the table or the requested row does not
	// exist.
	ErrNoSuchAnalysis = errors.New("no such analysis")

	// ErrInvalidTable indicates a table name that is not a plain
	// lower-case identifier.
	ErrInvalidTable = errors.New("invalid table name")
)
