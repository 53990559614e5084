package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/setting"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/userconfig"
	"github.com/timesheet-hq/timesheet-backend-go/internal/handler/http/response"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/jwt"
)

type SettingsHandler interface {
	ListRules(w http.ResponseWriter, r *http.Request)
	SaveRules(w http.ResponseWriter, r *http.Request)
	EffectiveRules(w http.ResponseWriter, r *http.Request)
	GetSpecialDays(w http.ResponseWriter, r *http.Request)
	SetSpecialDays(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	ruleService   rule.RuleService
	accessService rule.AccessService
	settings      setting.SettingRepository
}

func NewSettingsHandler(ruleService rule.RuleService, accessService rule.AccessService, settings setting.SettingRepository) SettingsHandler {
	return &settingsHandlerImpl{
		ruleService:   ruleService,
		accessService: accessService,
		settings:      settings,
	}
}

// ListRules implements SettingsHandler.
func (h *settingsHandlerImpl) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.ruleService.ListRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rules)
}

// SaveRules implements SettingsHandler.
func (h *settingsHandlerImpl) SaveRules(w http.ResponseWriter, r *http.Request) {
	var req rule.SaveRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rules, err := h.ruleService.SaveRules(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rules saved", rules)
}

// EffectiveRules implements SettingsHandler. Without a user ID param the
// caller's own thresholds are resolved; with one, the caller must be an
// HR reviewer covering that user.
func (h *settingsHandlerImpl) EffectiveRules(w http.ResponseWriter, r *http.Request) {
	caller, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	targetID := chi.URLParam(r, "userID")
	if targetID == "" {
		targetID = caller.UserID
	}
	if targetID != caller.UserID {
		ok, err := h.accessService.CanAccessUser(r.Context(), caller.UserID, targetID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if !ok {
			response.HandleError(w, userconfig.ErrUnauthorized)
			return
		}
	}

	result, err := h.ruleService.EffectiveForUser(r.Context(), targetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

type specialDaysResponse struct {
	Enabled bool `json:"enabled"`
}

type specialDaysRequest struct {
	Enabled bool `json:"enabled"`
}

// GetSpecialDays implements SettingsHandler.
func (h *settingsHandlerImpl) GetSpecialDays(w http.ResponseWriter, r *http.Request) {
	value, err := h.settings.Get(r.Context(), setting.KeySpecialDaysCheck, "0")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, specialDaysResponse{Enabled: value == "1"})
}

// SetSpecialDays implements SettingsHandler.
func (h *settingsHandlerImpl) SetSpecialDays(w http.ResponseWriter, r *http.Request) {
	var req specialDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	value := "0"
	if req.Enabled {
		value = "1"
	}
	if err := h.settings.Set(r.Context(), setting.KeySpecialDaysCheck, value); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Special day checking updated", specialDaysResponse{Enabled: req.Enabled})
}
