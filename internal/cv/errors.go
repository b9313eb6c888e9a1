package cv

import "errors"

var (
	// ErrInvalidInput marks requests the caller can fix.
	ErrInvalidInput = errors.New("invalid input")
	// ErrProfileNotFound means no stored profile exists to merge against.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrUpstream marks posting extraction or LLM transport failures.
	ErrUpstream = errors.New("upstream request failed")
	// ErrUnrecoverableOutput means the model response could not be shaped
	// into the document structure.
	ErrUnrecoverableOutput = errors.New("unrecoverable model output")
)
