package repository

import "errors"

// ErrConcurrentModification means the occurrence's revision moved between
// the caller's read and its write. The caller should refetch and retry.
var ErrConcurrentModification = errors.New("concurrent modification detected")
