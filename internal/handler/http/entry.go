package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/entry"
	"github.com/timesheet-hq/timesheet-backend-go/internal/handler/http/response"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/jwt"
)

type EntryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	UpsertComment(w http.ResponseWriter, r *http.Request)
}

type entryHandlerImpl struct {
	entryService entry.EntryService
}

func NewEntryHandler(entryService entry.EntryService) EntryHandler {
	return &entryHandlerImpl{
		entryService: entryService,
	}
}

// List implements EntryHandler.
func (h *entryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := entry.ListEntriesFilter{
		UserID: r.URL.Query().Get("user"),
		From:   r.URL.Query().Get("from"),
		To:     r.URL.Query().Get("to"),
	}

	result, err := h.entryService.ListEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements EntryHandler.
func (h *entryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req entry.SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.entryService.CreateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Entry created", result)
}

// Update implements EntryHandler.
func (h *entryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid entry ID", nil)
		return
	}

	var req entry.SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.entryService.UpdateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry updated", result)
}

// Delete implements EntryHandler.
func (h *entryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid entry ID", nil)
		return
	}

	caller, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	if err := h.entryService.DeleteEntry(r.Context(), caller.UserID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry deleted", nil)
}

type upsertCommentRequest struct {
	WorkDate string `json:"work_date"`
	Comment  string `json:"comment"`
}

// UpsertComment implements EntryHandler.
func (h *entryHandlerImpl) UpsertComment(w http.ResponseWriter, r *http.Request) {
	var req upsertCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	caller, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	result, err := h.entryService.UpsertComment(r.Context(), caller.UserID, req.WorkDate, req.Comment)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Comment saved", result)
}
