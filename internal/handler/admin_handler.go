package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/supriety/kindness-track/internal/service"
)

type AdminHandler struct {
	reviews service.ReviewService
	admin   service.AdminService
}

func NewAdminHandler(reviews service.ReviewService, admin service.AdminService) *AdminHandler {
	return &AdminHandler{reviews: reviews, admin: admin}
}

func (h *AdminHandler) ListPending(c echo.Context) error {
	rows, err := h.reviews.ListPending(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch pending acts"))
	}
	resp := make([]ActResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, toActResponse(&rows[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type VerifyRequest struct {
	Credits int `json:"credits"`
}

func (h *AdminHandler) Verify(c echo.Context) error {
	adminID := userID(c)
	var req VerifyRequest
	_ = c.Bind(&req)

	act, stats, err := h.reviews.Verify(c.Request().Context(), c.Param("id"), adminID, req.Credits)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "act not found"))
		case service.ErrAlreadyReviewed:
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "act already reviewed"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to verify act"))
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":        "act verified",
		"actId":          act.ID,
		"creditsAwarded": act.CreditsAwarded,
		"ownerStats":     toStatsResponse(stats),
	})
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

func (h *AdminHandler) Reject(c echo.Context) error {
	adminID := userID(c)
	var req RejectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	act, err := h.reviews.Reject(c.Request().Context(), c.Param("id"), adminID, req.Reason)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "act not found"))
		case service.ErrAlreadyReviewed:
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "act already reviewed"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "act rejected",
		"actId":   act.ID,
	})
}

type AdminUserRow struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FullName    string `json:"fullName"`
	AccountTier string `json:"accountTier"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch users"))
	}
	resp := make([]AdminUserRow, 0, len(users))
	for _, u := range users {
		resp = append(resp, AdminUserRow{
			ID:          u.ID,
			Email:       u.Email,
			Username:    u.Username,
			FullName:    u.FullName,
			AccountTier: u.AccountTier,
			Role:        string(u.Role),
			CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type OverviewResponse struct {
	TotalUsers         int64              `json:"totalUsers"`
	VerifiedToday      int64              `json:"verifiedToday"`
	VerifiedWeek       int64              `json:"verifiedWeek"`
	VerifiedMonth      int64              `json:"verifiedMonth"`
	CreditsDistributed int64              `json:"creditsDistributed"`
	MostActive         []LeaderboardEntry `json:"mostActive"`
}

func (h *AdminHandler) Overview(c echo.Context) error {
	overview, err := h.admin.Overview(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch overview"))
	}
	mostActive := make([]LeaderboardEntry, 0, len(overview.MostActive))
	for i := range overview.MostActive {
		mostActive = append(mostActive, toLeaderboardEntry(&overview.MostActive[i], i+1))
	}
	return c.JSON(http.StatusOK, OverviewResponse{
		TotalUsers:         overview.TotalUsers,
		VerifiedToday:      overview.VerifiedToday,
		VerifiedWeek:       overview.VerifiedWeek,
		VerifiedMonth:      overview.VerifiedMonth,
		CreditsDistributed: overview.CreditsDistributed,
		MostActive:         mostActive,
	})
}
