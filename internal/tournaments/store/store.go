// Package store persists tournaments, rounds, motions and preferences.
package store

import "debatetab/pkg/platform/sentinel"

// Re-exported so callers can match store errors without importing sentinel.
var (
	ErrNotFound = sentinel.ErrNotFound
	ErrConflict = sentinel.ErrConflict
)
