package domain

import "errors"

var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMissingContext means a required upstream record (startup, proposal,
	// current user) is absent. Nothing was written.
	ErrMissingContext = errors.New("missing context")
	// ErrInvalidArgument is returned for malformed input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrSubmissionFailed wraps a store failure during a multi-write workflow.
	ErrSubmissionFailed = errors.New("submission failed")
	// ErrGenerationFailed covers both an erroring and an unsuccessful pitch generator.
	ErrGenerationFailed = errors.New("pitch generation failed")
)
