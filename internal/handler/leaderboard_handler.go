package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/supriety/kindness-track/internal/repository"
	"github.com/supriety/kindness-track/internal/service"
)

type LeaderboardHandler struct {
	svc service.LeaderboardService
}

func NewLeaderboardHandler(svc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

type LeaderboardEntry struct {
	Rank              int     `json:"rank"`
	Username          string  `json:"username"`
	FullName          string  `json:"fullName"`
	AvatarURL         *string `json:"avatarUrl"`
	Credits           int64   `json:"credits"`
	ActsVerified      int64   `json:"actsVerified"`
	CurrentStreak     int     `json:"currentStreak"`
	ServiceLeaderTier *string `json:"serviceLeaderTier"`
}

func toLeaderboardEntry(row *repository.LeaderboardRow, rank int) LeaderboardEntry {
	var tier *string
	if row.ServiceLeaderTier != nil {
		val := string(*row.ServiceLeaderTier)
		tier = &val
	}
	return LeaderboardEntry{
		Rank:              rank,
		Username:          row.Username,
		FullName:          row.FullName,
		AvatarURL:         row.AvatarURL,
		Credits:           row.Credits,
		ActsVerified:      row.ActsVerified,
		CurrentStreak:     row.CurrentStreak,
		ServiceLeaderTier: tier,
	}
}

func (h *LeaderboardHandler) Top(c echo.Context) error {
	rows, err := h.svc.Top(c.Request().Context(), c.QueryParam("range"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch leaderboard"))
	}
	resp := make([]LeaderboardEntry, 0, len(rows))
	for i := range rows {
		resp = append(resp, toLeaderboardEntry(&rows[i], i+1))
	}
	return c.JSON(http.StatusOK, resp)
}
