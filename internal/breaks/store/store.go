// Package store persists break categories, eligibility, generated breaks
// and the team standings the break is computed from.
package store

import "debatetab/pkg/platform/sentinel"

var (
	ErrNotFound = sentinel.ErrNotFound
	ErrConflict = sentinel.ErrConflict
)
