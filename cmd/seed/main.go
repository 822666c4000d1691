package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/supriety/kindness-track/internal/auth"
	"github.com/supriety/kindness-track/internal/config"
	"github.com/supriety/kindness-track/internal/db"
	"github.com/supriety/kindness-track/internal/model"
	"gorm.io/gorm"
)

// Seeds the admin account and, when the table is empty, a few sample
// users with pending acts so the review queue has something in it.
func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(
		&model.User{},
		&model.UserStats{},
		&model.KindnessAct{},
		&model.ActReaction{},
		&model.ActComment{},
		&model.UserPreferences{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	if err := seedAdmin(ctx, gdb, adminEmail, adminPassword); err != nil {
		return err
	}

	var count int64
	if err := gdb.WithContext(ctx).Model(&model.KindnessAct{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 && os.Getenv("FORCE_SEED") != "true" {
		log.Printf("acts already exist; skipping sample seed (set FORCE_SEED=true to override)")
		return nil
	}
	if err := seedSamples(ctx, gdb); err != nil {
		return err
	}

	log.Println("seed completed successfully")
	return nil
}

func seedAdmin(ctx context.Context, gdb *gorm.DB, email, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     "admin",
		PasswordHash: hash,
		FullName:     "Site Admin",
		AccountTier:  "free",
		Role:         model.RoleAdmin,
	}
	if err := gdb.WithContext(ctx).
		Where("email = ?", email).
		FirstOrCreate(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return gdb.WithContext(ctx).
		FirstOrCreate(&model.UserStats{}, &model.UserStats{UserID: admin.ID}).Error
}

type sampleAct struct {
	Title       string
	Description string
	Category    model.ActCategory
	DaysAgo     int
}

func seedSamples(ctx context.Context, gdb *gorm.DB) error {
	samples := map[string][]sampleAct{
		"kind_kat": {
			{Title: "Helped neighbor carry groceries", Description: "Carried bags up three flights of stairs.", Category: model.CategoryOffline, DaysAgo: 0},
			{Title: "Answered forum questions", Description: "Spent an hour on the beginners board.", Category: model.CategoryOnline, DaysAgo: 1},
		},
		"good_sam": {
			{Title: "Park cleanup", Description: "Picked up litter around the east pond.", Category: model.CategoryCommunity, DaysAgo: 2},
		},
	}

	for username, acts := range samples {
		hash, err := auth.HashPassword("changeme-" + username)
		if err != nil {
			return err
		}
		user := model.User{
			ID:           uuid.NewString(),
			Email:        username + "@example.com",
			Username:     username,
			PasswordHash: hash,
			FullName:     username,
			Role:         model.RoleUser,
		}
		if err := gdb.WithContext(ctx).
			Where("username = ?", username).
			FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", username, err)
		}
		if err := gdb.WithContext(ctx).
			FirstOrCreate(&model.UserStats{}, &model.UserStats{UserID: user.ID}).Error; err != nil {
			return err
		}

		for _, sa := range acts {
			act := model.KindnessAct{
				ID:                 uuid.NewString(),
				UserID:             user.ID,
				Title:              sa.Title,
				Description:        sa.Description,
				Category:           sa.Category,
				ActDate:            time.Now().UTC().AddDate(0, 0, -sa.DaysAgo).Truncate(24 * time.Hour),
				VerificationStatus: model.StatusPending,
				Visibility:         model.VisibilityPublic,
			}
			if err := gdb.WithContext(ctx).Create(&act).Error; err != nil {
				return fmt.Errorf("seed act %q: %w", sa.Title, err)
			}
		}
	}
	return nil
}
