package store

import "errors"

// ErrNotFound covers both genuine absence and ownership mismatch. A row owned
// by another user must be indistinguishable from a row that does not exist,
// so the store never reports "forbidden".
var ErrNotFound = errors.New("not_found")

const (
	defaultLimit = 100
	maxLimit     = 500
)

// clampPage normalizes offset/limit query values.
func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return offset, limit
}
