package entry

import (
	"context"
)

// EntryService defines business logic for work entries.
type EntryService interface {
	// ListEntries retrieves a user's entries in a date range, each
	// decorated with its rule violations.
	ListEntries(ctx context.Context, filter ListEntriesFilter) ([]EntryResponse, error)

	// CreateEntry creates a new entry for the request's user and date.
	CreateEntry(ctx context.Context, req SaveEntryRequest) (EntryResponse, error)

	// UpdateEntry replaces the mutable fields of an existing entry.
	UpdateEntry(ctx context.Context, req SaveEntryRequest) (EntryResponse, error)

	// DeleteEntry removes an entry owned by the given user.
	DeleteEntry(ctx context.Context, userID string, id int64) error

	// UpsertComment sets only the comment of the entry on a date,
	// creating a time-less entry when none exists.
	UpsertComment(ctx context.Context, userID, workDate, comment string) (EntryResponse, error)
}
