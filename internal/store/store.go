// Package store journals output events. The PostgreSQL journal backs the
// HTTP service; the SQLite journal backs single-process CLI runs.
package store

import "errors"

var ErrNotFound = errors.New("not found")

const defaultRecentLimit = 100

func clampLimit(limit int) int {
	if limit <= 0 || limit > defaultRecentLimit*10 {
		return defaultRecentLimit
	}
	return limit
}
