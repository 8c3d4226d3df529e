// Package store persists custom registration questions and their answers.
package store

import "debatetab/pkg/platform/sentinel"

var (
	ErrNotFound = sentinel.ErrNotFound
	ErrConflict = sentinel.ErrConflict
)
