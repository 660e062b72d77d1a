package core

import "errors"

// Recoverable error kinds. Components log these and leave their state unchanged;
// match with errors.Is.
var (
	// ErrOutOfRange rejects a property value outside its allowed range.
	ErrOutOfRange = errors.New("value out of range")
	// ErrAssetNotFound reports a missing asset file.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrInvalidHierarchy rejects a parenting request that would break the tree.
	ErrInvalidHierarchy = errors.New("invalid hierarchy")
	// ErrDeleted rejects an operation on an object that was already deleted.
	ErrDeleted = errors.New("object deleted")
)
