package domain

import "errors"

// Sentinel errors shared across repositories and services. Uniqueness
// conflicts are detected by the persistence layer, never by shape
// validation, and must stay distinguishable from field-level errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrDuplicateName  = errors.New("name already in use")
	ErrDuplicateCode  = errors.New("code already in use")
)
