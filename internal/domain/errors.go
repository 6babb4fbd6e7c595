package domain

import "fmt"

// GenerationError means the text-generation seam could not produce a
// response. It is always recoverable: every analysis component catches
// it and substitutes its rule-based fallback.
type GenerationError struct {
	Cause string
	Err   error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("text generation failed: %s: %v", e.Cause, e.Err)
	}
	return fmt.Sprintf("text generation failed: %s", e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// InputError means the caller handed the core a malformed or missing
// required value. These are rejected before any analysis runs.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}
