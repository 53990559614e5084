package entry

import (
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/timeutil"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/validator"
)

// SaveEntryRequest covers create and update. Start/End are "HH:MM"
// clock strings; both empty means a comment-only entry.
type SaveEntryRequest struct {
	ID           int64   `json:"-"`
	UserID       string  `json:"-"`
	WorkDate     string  `json:"work_date"`
	Start        *string `json:"start,omitempty"`
	End          *string `json:"end,omitempty"`
	BreakMinutes int     `json:"break_minutes"`
	Comment      *string `json:"comment,omitempty"`
}

func (r *SaveEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.WorkDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be in YYYY-MM-DD format",
		})
	}

	if r.Start != nil && *r.Start != "" && timeutil.ParseHM(*r.Start) == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start must be in HH:MM format",
		})
	}

	if r.End != nil && *r.End != "" && timeutil.ParseHM(*r.End) == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must be in HH:MM format",
		})
	}

	hasStart := r.Start != nil && *r.Start != ""
	hasEnd := r.End != nil && *r.End != ""
	if hasStart != hasEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start and end must be provided together",
		})
	}

	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Times returns the parsed minute values, nil when absent.
func (r *SaveEntryRequest) Times() (start, end *int) {
	if r.Start != nil && *r.Start != "" {
		start = timeutil.ParseHM(*r.Start)
	}
	if r.End != nil && *r.End != "" {
		end = timeutil.ParseHM(*r.End)
	}
	return start, end
}

type ListEntriesFilter struct {
	UserID string `json:"-"`
	From   string `json:"from"`
	To     string `json:"to"`
}

func (f *ListEntriesFilter) Validate() error {
	var errs validator.ValidationErrors

	fromDate, fromOK := validator.IsValidDate(f.From)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}

	toDate, toOK := validator.IsValidDate(f.To)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}

	if fromOK && toOK && toDate.Before(fromDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EntryResponse struct {
	ID            int64    `json:"id"`
	UserID        string   `json:"user_id"`
	WorkDate      string   `json:"work_date"`
	Start         *string  `json:"start,omitempty"`
	End           *string  `json:"end,omitempty"`
	BreakMinutes  int      `json:"break_minutes"`
	WorkedMinutes *int     `json:"worked_minutes,omitempty"`
	Worked        string   `json:"worked"`
	Comment       *string  `json:"comment,omitempty"`
	Violations    []string `json:"violations,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// ToResponse renders an entry for the API, violations attached by the
// caller after rule checking.
func ToResponse(e Entry, violations []string) EntryResponse {
	resp := EntryResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		WorkDate:     e.WorkDate,
		BreakMinutes: e.BreakMinutes,
		Comment:      e.Comment,
		Violations:   violations,
		CreatedAt:    e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    e.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if e.StartMin != nil {
		s := timeutil.FormatHM(e.StartMin)
		resp.Start = &s
	}
	if e.EndMin != nil {
		s := timeutil.FormatHM(e.EndMin)
		resp.End = &s
	}
	worked := timeutil.WorkedMinutes(e.StartMin, e.EndMin, e.BreakMinutes)
	resp.WorkedMinutes = worked
	resp.Worked = timeutil.FormatHM(worked)
	return resp
}
