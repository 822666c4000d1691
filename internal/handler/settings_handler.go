package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/service"
)

type SettingsHandler struct {
	svc service.SettingsService
}

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

type UpdateAccountRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *SettingsHandler) UpdateAccount(c echo.Context) error {
	uid := userID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing user"))
	}
	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	err := h.svc.UpdateAccount(c.Request().Context(), uid, service.UpdateAccountInput{
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "account updated"})
}

type PreferencesRequest struct {
	EmailLikes        bool   `json:"emailLikes"`
	EmailComments     bool   `json:"emailComments"`
	EmailSummary      bool   `json:"emailSummary"`
	ProfileVisibility string `json:"profileVisibility"`
	HideFromFeed      bool   `json:"hideFromFeed"`
}

type PreferencesResponse struct {
	EmailLikes        bool   `json:"emailLikes"`
	EmailComments     bool   `json:"emailComments"`
	EmailSummary      bool   `json:"emailSummary"`
	ProfileVisibility string `json:"profileVisibility"`
	HideFromFeed      bool   `json:"hideFromFeed"`
}

func toPreferencesResponse(p *model.UserPreferences) PreferencesResponse {
	return PreferencesResponse{
		EmailLikes:        p.EmailLikes,
		EmailComments:     p.EmailComments,
		EmailSummary:      p.EmailSummary,
		ProfileVisibility: p.ProfileVisibility,
		HideFromFeed:      p.HideFromFeed,
	}
}

func (h *SettingsHandler) GetPreferences(c echo.Context) error {
	uid := userID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing user"))
	}
	prefs, err := h.svc.GetPreferences(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch preferences"))
	}
	return c.JSON(http.StatusOK, toPreferencesResponse(prefs))
}

func (h *SettingsHandler) UpdatePreferences(c echo.Context) error {
	uid := userID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing user"))
	}
	var req PreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	prefs, err := h.svc.UpdatePreferences(c.Request().Context(), uid, service.PreferencesInput{
		EmailLikes:        req.EmailLikes,
		EmailComments:     req.EmailComments,
		EmailSummary:      req.EmailSummary,
		ProfileVisibility: req.ProfileVisibility,
		HideFromFeed:      req.HideFromFeed,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toPreferencesResponse(prefs))
}

func (h *SettingsHandler) DeleteAccount(c echo.Context) error {
	uid := userID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing user"))
	}
	if err := h.svc.DeleteAccount(c.Request().Context(), uid); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete account"))
	}
	clearRefreshCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "account deleted"})
}
