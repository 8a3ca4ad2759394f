package main

import (
	"log"

	"scholarship-backend/internal/config"
	"scholarship-backend/internal/database"
	"scholarship-backend/internal/mailer"
	"scholarship-backend/internal/media"
	"scholarship-backend/internal/router"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	var store media.Store = media.Disabled{}
	if cfg.CloudinaryURL != "" {
		cld, err := media.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("Cloudinary init failed: %v", err)
		}
		store = cld
	}

	sender := mailer.NewSMTP(cfg)

	app := router.New(cfg, store, sender)

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
