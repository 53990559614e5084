package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/timesheet-hq/timesheet-backend-go/internal/handler/http/response"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/holiday"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	source holiday.Source
}

func NewHolidayHandler(source holiday.Source) HolidayHandler {
	return &holidayHandlerImpl{
		source: source,
	}
}

// List implements HolidayHandler. Year defaults to the current one, an
// empty state yields an empty set.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year := time.Now().UTC().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 || parsed > 9999 {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		year = parsed
	}

	holidays, err := h.source.Holidays(r.Context(), year, r.URL.Query().Get("state"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}
