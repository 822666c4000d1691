package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/service"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type StatsResponse struct {
	TotalCredits      int     `json:"totalCredits"`
	TotalActsVerified int     `json:"totalActsVerified"`
	CurrentStreak     int     `json:"currentStreak"`
	LongestStreak     int     `json:"longestStreak"`
	ServiceLeader     bool    `json:"serviceLeaderStatus"`
	ServiceLeaderTier *string `json:"serviceLeaderTier"`
}

func toStatsResponse(s *model.UserStats) *StatsResponse {
	if s == nil {
		return nil
	}
	var tier *string
	if s.ServiceLeaderTier != nil {
		val := string(*s.ServiceLeaderTier)
		tier = &val
	}
	return &StatsResponse{
		TotalCredits:      s.TotalCredits,
		TotalActsVerified: s.TotalActsVerified,
		CurrentStreak:     s.CurrentStreak,
		LongestStreak:     s.LongestStreak,
		ServiceLeader:     s.ServiceLeader,
		ServiceLeaderTier: tier,
	}
}

type PublicUserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FullName  string  `json:"fullName"`
	Bio       string  `json:"bio"`
	AvatarURL *string `json:"avatarUrl"`
	CreatedAt string  `json:"createdAt"`
}

type ProfileResponse struct {
	User  PublicUserResponse `json:"user"`
	Stats *StatsResponse     `json:"stats"`
	Acts  []ActResponse      `json:"acts"`
}

func (h *ProfileHandler) Get(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid username"))
	}
	profile, err := h.svc.GetByUsername(c.Request().Context(), username)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch profile"))
	}

	acts := make([]ActResponse, 0, len(profile.Acts))
	for i := range profile.Acts {
		acts = append(acts, toActResponse(&profile.Acts[i]))
	}
	return c.JSON(http.StatusOK, ProfileResponse{
		User: PublicUserResponse{
			ID:        profile.User.ID,
			Username:  profile.User.Username,
			FullName:  profile.User.FullName,
			Bio:       profile.User.Bio,
			AvatarURL: profile.User.AvatarURL,
			CreatedAt: profile.User.CreatedAt.Format("2006-01-02"),
		},
		Stats: toStatsResponse(profile.Stats),
		Acts:  acts,
	})
}

func (h *ProfileHandler) Update(c echo.Context) error {
	uid := userID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing user"))
	}

	in := service.UpdateProfileInput{
		FullName: formField(c, "fullName"),
		Bio:      formField(c, "bio"),
	}
	avatar, file, err := mediaFromForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unreadable media file"))
	}
	if file != nil {
		defer file.Close()
	}
	in.Avatar = avatar

	user, err := h.svc.Update(c.Request().Context(), uid, in)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
