package main

import (
	"context"
	"log"

	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"
	"github.com/supriety/kindness-track/internal/config"
	"github.com/supriety/kindness-track/internal/db"
	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/server"
	"github.com/supriety/kindness-track/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(
		&model.User{},
		&model.UserStats{},
		&model.KindnessAct{},
		&model.ActReaction{},
		&model.ActComment{},
		&model.UserPreferences{},
	); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	var media service.MediaService
	if cfg.UploadDriver == "gcs" {
		if cfg.StorageBucket == "" {
			log.Fatalf("STORAGE_BUCKET is required with UPLOAD_DRIVER=gcs")
		}
		client, err := storage.NewClient(context.Background())
		if err != nil {
			log.Fatalf("storage client error: %v", err)
		}
		defer client.Close()
		media = service.NewGCSMediaService(client, cfg.StorageBucket)
	} else {
		media = service.NewLocalMediaService(cfg.UploadDir)
	}

	srv, err := server.New(conn, cfg, media)
	if err != nil {
		log.Fatalf("server init error: %v", err)
	}

	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
