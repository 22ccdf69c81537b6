package repositories

import "errors"

// Sentinel errors for the storage layer. These are infrastructure
// signals; the service layer decides whether they are domain failures.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates an insert hit a uniqueness constraint.
	// The service layer normally rejects duplicates before writing;
	// this surfaces only when a constraint catches what a racing
	// validation missed.
	ErrDuplicate = errors.New("duplicate record")
)
