// Package store persists institutions, teams, speakers, adjudicators and
// speaker categories.
package store

import "debatetab/pkg/platform/sentinel"

var (
	ErrNotFound = sentinel.ErrNotFound
	ErrConflict = sentinel.ErrConflict
)
