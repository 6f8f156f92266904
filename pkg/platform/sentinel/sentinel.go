package sentinel

import "errors"

// Sentinel errors for state facts. Entities return these wrapped in a
// domain error so callers can match on either the code or the fact.
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	// ErrAlreadyUsed: a write-once slot has already been written.
	ErrAlreadyUsed = errors.New("already used")
)
