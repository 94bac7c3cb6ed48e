package queue

import "errors"

var (
	// ErrNotFound indicates the requested job does not exist.
	ErrNotFound = errors.New("job not found")
	// ErrInvalidTransition indicates a status change the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrSchemaVersion indicates the on-disk database was created by an
	// incompatible version of the tool.
	ErrSchemaVersion = errors.New("unsupported schema version")
)
