package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/washpay-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SettingsHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	SaveSettings(w http.ResponseWriter, r *http.Request)
	ResetSettings(w http.ResponseWriter, r *http.Request)
	GetCategory(w http.ResponseWriter, r *http.Request)
	UpdateCategory(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService salary.SettingsService
}

func NewSettingsHandler(settingsService salary.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsService}
}

func modifiedBy(r *http.Request) string {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	return principal.UserID
}

func (h *settingsHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *settingsHandlerImpl) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req salary.SaveSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.settingsService.SaveSettings(r.Context(), req, modifiedBy(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary settings saved", result)
}

func (h *settingsHandlerImpl) ResetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.ResetToDefaults(r.Context(), modifiedBy(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary settings reset to defaults", result)
}

func (h *settingsHandlerImpl) GetCategory(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.GetCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *settingsHandlerImpl) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var partial map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.settingsService.UpdateCategory(r.Context(), chi.URLParam(r, "category"), partial, modifiedBy(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary settings updated", result)
}
