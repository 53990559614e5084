package entry

import (
	"time"
)

// Entry is one tracked work day for a user. Start/End are minutes since
// midnight; an entry with both present is "complete" and participates in
// aggregation and rule checking.
type Entry struct {
	ID           int64
	UserID       string
	WorkDate     string // YYYY-MM-DD
	StartMin     *int
	EndMin       *int
	BreakMinutes int
	Comment      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Complete reports whether both time boundaries are recorded.
func (e Entry) Complete() bool {
	return e.StartMin != nil && e.EndMin != nil
}
