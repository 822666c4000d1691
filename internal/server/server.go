package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/supriety/kindness-track/internal/auth"
	"github.com/supriety/kindness-track/internal/cache"
	"github.com/supriety/kindness-track/internal/config"
	"github.com/supriety/kindness-track/internal/handler"
	appmw "github.com/supriety/kindness-track/internal/middleware"
	"github.com/supriety/kindness-track/internal/repository"
	"github.com/supriety/kindness-track/internal/service"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(db *gorm.DB, cfg *config.Config, media service.MediaService) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTRefreshSecret)
	authMw := appmw.NewAuthMiddleware(tokens)

	userRepo := repository.NewUserRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	actRepo := repository.NewActRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	prefsRepo := repository.NewPreferencesRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)

	feedCache, err := cache.New[[]repository.ActRow](64)
	if err != nil {
		return nil, err
	}
	boardCache, err := cache.New[[]repository.LeaderboardRow](16)
	if err != nil {
		return nil, err
	}

	authSvc := service.NewAuthService(userRepo, statsRepo, tokens)
	actSvc := service.NewActService(actRepo, reactionRepo, commentRepo, media)
	reviewSvc := service.NewReviewService(actRepo, reviewRepo)
	feedSvc := service.NewFeedService(actRepo, feedCache)
	boardSvc := service.NewLeaderboardService(leaderboardRepo, boardCache)
	profileSvc := service.NewProfileService(userRepo, statsRepo, actRepo, media)
	settingsSvc := service.NewSettingsService(userRepo, prefsRepo)
	adminSvc := service.NewAdminService(userRepo, actRepo, statsRepo)
	dashboardSvc := service.NewDashboardService(statsRepo, actRepo, leaderboardRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	actHandler := handler.NewActHandler(actSvc)
	feedHandler := handler.NewFeedHandler(feedSvc)
	boardHandler := handler.NewLeaderboardHandler(boardSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	adminHandler := handler.NewAdminHandler(reviewSvc, adminSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	if cfg.UploadDriver == "local" {
		e.Static("/uploads", cfg.UploadDir)
	}

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.POST("/forgot-password", authHandler.ForgotPassword)

	acts := api.Group("/acts", authMw.RequireAuth)
	acts.POST("", actHandler.Create)
	acts.GET("/my-acts", actHandler.ListMine)
	acts.GET("/:id", actHandler.Get)
	acts.PATCH("/:id", actHandler.Update)
	acts.DELETE("/:id", actHandler.Delete)
	acts.POST("/:id/react", actHandler.React)
	acts.DELETE("/:id/react", actHandler.Unreact)
	acts.POST("/:id/comments", actHandler.Comment)
	acts.GET("/:id/comments", actHandler.ListComments)

	api.GET("/community/feed", feedHandler.Feed, authMw.RequireAuth)
	api.GET("/leaderboard", boardHandler.Top, authMw.RequireAuth)
	api.GET("/dashboard", dashboardHandler.Get, authMw.RequireAuth)

	api.GET("/profile/:username", profileHandler.Get)
	api.PATCH("/profile", profileHandler.Update, authMw.RequireAuth)

	settings := api.Group("/settings", authMw.RequireAuth)
	settings.PATCH("/account", settingsHandler.UpdateAccount)
	settings.DELETE("/account", settingsHandler.DeleteAccount)
	settings.GET("/preferences", settingsHandler.GetPreferences)
	settings.PUT("/preferences", settingsHandler.UpdatePreferences)

	admin := api.Group("/admin", authMw.RequireAuth, authMw.RequireAdmin)
	admin.GET("/acts/pending", adminHandler.ListPending)
	admin.POST("/acts/:id/verify", adminHandler.Verify)
	admin.POST("/acts/:id/reject", adminHandler.Reject)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/stats", adminHandler.Overview)

	return &Server{e: e}, nil
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
