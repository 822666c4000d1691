package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/service"
)

type DashboardHandler struct {
	svc service.DashboardService
}

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

type TodaysActResponse struct {
	ID                 string `json:"id"`
	VerificationStatus string `json:"verificationStatus"`
	ActDate            string `json:"actDate"`
}

type DashboardResponse struct {
	Stats         *StatsResponse     `json:"stats"`
	TodaysAct     *TodaysActResponse `json:"todaysAct"`
	CommunityFeed []ActResponse      `json:"communityFeed"`
	Leaderboard   []LeaderboardEntry `json:"leaderboard"`
	Quote         string             `json:"quote"`
}

func toTodaysActResponse(act *model.KindnessAct) *TodaysActResponse {
	if act == nil {
		return nil
	}
	return &TodaysActResponse{
		ID:                 act.ID,
		VerificationStatus: string(act.VerificationStatus),
		ActDate:            act.ActDate.Format("2006-01-02"),
	}
}

func (h *DashboardHandler) Get(c echo.Context) error {
	uid := userID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing user"))
	}
	dash, err := h.svc.Get(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch dashboard"))
	}

	feed := make([]ActResponse, 0, len(dash.CommunityFeed))
	for i := range dash.CommunityFeed {
		feed = append(feed, toActResponse(&dash.CommunityFeed[i]))
	}
	top := make([]LeaderboardEntry, 0, len(dash.Leaderboard))
	for i := range dash.Leaderboard {
		top = append(top, toLeaderboardEntry(&dash.Leaderboard[i], i+1))
	}
	return c.JSON(http.StatusOK, DashboardResponse{
		Stats:         toStatsResponse(dash.Stats),
		TodaysAct:     toTodaysActResponse(dash.TodaysAct),
		CommunityFeed: feed,
		Leaderboard:   top,
		Quote:         dash.Quote,
	})
}
