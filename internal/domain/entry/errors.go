package entry

import "errors"

// Entry domain errors
var (
	ErrEntryNotFound   = errors.New("entry not found")
	ErrDuplicateEntry  = errors.New("an entry already exists for this user and date")
	ErrOneSidedSpan    = errors.New("start and end must be provided together")
	ErrUnauthorized    = errors.New("unauthorized to access this entry")
	ErrInvalidWorkDate = errors.New("work date must be in YYYY-MM-DD format")
)
