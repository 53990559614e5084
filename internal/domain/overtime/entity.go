package overtime

// Aggregate is the overtime balance computed over a set of complete
// entries.
type Aggregate struct {
	From            string // first entry date, YYYY-MM-DD
	To              string // last entry date
	TotalMinutes    int    // net worked minutes
	Workdays        int    // entry days counted against the daily target
	OvertimeMinutes int    // TotalMinutes - Workdays*dailyTarget
}

// Summary is a user's overtime balance for the API and the HR user list.
type Summary struct {
	UserID          string
	From            string
	To              string
	TotalMinutes    int
	Workdays        int
	OvertimeMinutes int
	DailyTarget     int
}

// HRUserRow is one employee line in the HR oversight list.
type HRUserRow struct {
	UserID          string
	LastEntryDate   *string
	OvertimeMinutes int
	Workdays        int
	TotalMinutes    int
}
