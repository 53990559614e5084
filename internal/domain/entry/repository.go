package entry

import (
	"context"
)

// EntryRepository defines data access methods for work entries.
type EntryRepository interface {
	// Create inserts a new entry. (user_id, work_date) is unique.
	Create(ctx context.Context, e Entry) (Entry, error)

	// GetByID retrieves an entry by its ID.
	GetByID(ctx context.Context, id int64) (Entry, error)

	// GetByUserAndDate retrieves the entry of a user on one date, if any.
	GetByUserAndDate(ctx context.Context, userID, workDate string) (*Entry, error)

	// ListByRange retrieves a user's entries with work_date in [from, to],
	// ordered by work_date ascending.
	ListByRange(ctx context.Context, userID, from, to string) ([]Entry, error)

	// ListByUser retrieves all entries of a user ordered by work_date.
	ListByUser(ctx context.Context, userID string) ([]Entry, error)

	// Update replaces the mutable fields of an entry.
	Update(ctx context.Context, e Entry) error

	// Delete removes an entry by ID.
	Delete(ctx context.Context, id int64) error

	// LastEntryDates returns the most recent work_date per user for the
	// given users, considering only complete entries. Users without any
	// complete entry are absent from the map.
	LastEntryDates(ctx context.Context, userIDs []string) (map[string]string, error)
}
