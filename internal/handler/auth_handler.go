package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/supriety/kindness-track/internal/auth"
	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/service"
)

// Refresh tokens travel in an http-only cookie; the refresh endpoint also
// accepts one in the request body for clients that cannot send cookies.
const refreshCookieName = "supriety_refresh"

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	FullName    string  `json:"fullName"`
	Bio         string  `json:"bio"`
	AvatarURL   *string `json:"avatarUrl"`
	AccountTier string  `json:"accountTier"`
	Role        string  `json:"role"`
	CreatedAt   string  `json:"createdAt"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FullName:    u.FullName,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		AccountTier: u.AccountTier,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

func setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.RefreshTokenTTL / time.Second),
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})
}

func clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	user, pair, err := h.svc.Signup(c.Request().Context(), req.Email, req.Username, req.Password, req.FullName)
	if err != nil {
		if err == service.ErrIdentityTaken {
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "email or username already in use"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(http.StatusCreated, AuthResponse{User: toUserResponse(user), AccessToken: pair.AccessToken})
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	user, pair, err := h.svc.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "invalid credentials"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "login failed"))
	}
	setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(http.StatusOK, AuthResponse{User: toUserResponse(user), AccessToken: pair.AccessToken})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = c.Bind(&body)
		token = body.RefreshToken
	}
	if token == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "refresh token missing"))
	}

	user, pair, err := h.svc.Refresh(c.Request().Context(), token)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "invalid refresh token"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "refresh failed"))
	}
	setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(http.StatusOK, AuthResponse{User: toUserResponse(user), AccessToken: pair.AccessToken})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	clearRefreshCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil || body.Email == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "email is required"))
	}
	// Same answer whether or not the account exists.
	return c.JSON(http.StatusOK, map[string]string{
		"message": "If that account exists, a reset email has been sent.",
	})
}
