// Package state persists lint results between runs using SQLite.
// Results are keyed by file path and a cache key derived from the file
// content and the lint configuration, so unchanged files are not
// re-analyzed.
package state

import (
	"errors"
	"time"
)

// ErrNotOpen is returned when the store is used before Open.
var ErrNotOpen = errors.New("database not opened")

// DefaultPath is the cache location relative to the project root.
const DefaultPath = ".primerlint/cache.db"

// Run records one lint invocation.
type Run struct {
	ID          string
	StartedAt   time.Time
	CompletedAt *time.Time
	Files       int
	Issues      int
	Fixed       int
}
