package main

import (
	"context"
	"log"

	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"
	"github.com/okezie/marketlive-backend/internal/config"
	"github.com/okezie/marketlive-backend/internal/db"
	"github.com/okezie/marketlive-backend/internal/imagestore"
	"github.com/okezie/marketlive-backend/internal/model"
	"github.com/okezie/marketlive-backend/internal/server"
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
	if err := conn.AutoMigrate(&model.Listing{}); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	images := buildImageStore(cfg)

	srv := server.New(conn, images, cfg.PublicDir, cfg.ImageDir)
	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	log.Fatalf("server stopped: %v", srv.Start(addr))
}

// buildImageStore prefers the configured GCS bucket and falls back to the
// local image directory; image storage trouble is not a reason to refuse to
// serve listings.
func buildImageStore(cfg *config.Config) imagestore.Store {
	if cfg.StorageBucket != "" {
		client, err := storage.NewClient(context.Background())
		if err == nil {
			return imagestore.NewGCSStore(client, cfg.StorageBucket)
		}
		log.Printf("gcs client error: %v; falling back to local image dir", err)
	}
	disk, err := imagestore.NewDiskStore(cfg.ImageDir)
	if err != nil {
		log.Fatalf("image dir error: %v", err)
	}
	return disk
}
