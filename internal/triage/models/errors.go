package models

import "errors"

// Error kinds reported by the triage core. Callers match them with errors.Is.
var (
	ErrEmptyQueue       = errors.New("queue is empty")
	ErrNotFound         = errors.New("patient not found")
	ErrNoCapacity       = errors.New("no practitioners available for the required department")
	ErrNoPractitioners  = errors.New("no practitioners in this department")
	ErrInvalidSelection = errors.New("invalid practitioner selection")
	ErrNothingToTreat   = errors.New("practitioner has no assigned patients")
	ErrDuplicateID      = errors.New("identifier already in use")
	ErrCategoryMismatch = errors.New("practitioner category does not match department")
	ErrUnknownCategory  = errors.New("unknown category")
)
