package overtime

import (
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/timeutil"
)

type SummaryResponse struct {
	UserID          string `json:"user_id"`
	From            string `json:"from"`
	To              string `json:"to"`
	TotalMinutes    int    `json:"total_minutes"`
	Total           string `json:"total"`
	Workdays        int    `json:"workdays"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	Overtime        string `json:"overtime"`
	DailyTarget     int    `json:"daily_target"`
}

func ToSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		UserID:          s.UserID,
		From:            s.From,
		To:              s.To,
		TotalMinutes:    s.TotalMinutes,
		Total:           timeutil.FormatHM(&s.TotalMinutes),
		Workdays:        s.Workdays,
		OvertimeMinutes: s.OvertimeMinutes,
		Overtime:        timeutil.FormatHMSigned(s.OvertimeMinutes),
		DailyTarget:     s.DailyTarget,
	}
}

type HRUserRowResponse struct {
	UserID          string  `json:"user_id"`
	LastEntryDate   *string `json:"last_entry_date,omitempty"`
	OvertimeMinutes int     `json:"overtime_minutes"`
	Overtime        string  `json:"overtime"`
	Workdays        int     `json:"workdays"`
	TotalMinutes    int     `json:"total_minutes"`
}

func ToHRUserRowResponse(r HRUserRow) HRUserRowResponse {
	return HRUserRowResponse{
		UserID:          r.UserID,
		LastEntryDate:   r.LastEntryDate,
		OvertimeMinutes: r.OvertimeMinutes,
		Overtime:        timeutil.FormatHMSigned(r.OvertimeMinutes),
		Workdays:        r.Workdays,
		TotalMinutes:    r.TotalMinutes,
	}
}
