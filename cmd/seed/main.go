package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eventhub/internal/config"
	"eventhub/internal/db"
	"eventhub/internal/model"
	"eventhub/internal/repository"
)

// Seeds an initial admin account and a batch of sample events so a fresh
// deployment has something to favorite.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Event{}, &model.Favorite{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	if err := seedAdmin(ctx, gormDB); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, err := seedEvents(ctx, gormDB)
	if err != nil {
		log.Fatalf("Failed to seed events: %v", err)
	}

	log.Printf("Seed completed, %d events created", created)
}

func seedAdmin(ctx context.Context, gormDB *gorm.DB) error {
	userRepo := repository.NewUserRepository(gormDB)

	username := envOr("ADMIN_USERNAME", "admin")
	if exists, err := userRepo.ExistsByUsername(ctx, username); err != nil {
		return err
	} else if exists {
		log.Printf("Admin user %q already exists, skipping", username)
		return nil
	}

	password := envOr("ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username:     username,
		Email:        envOr("ADMIN_EMAIL", "admin@eventhub.local"),
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("Admin user %q already exists, skipping", username)
			return nil
		}
		return err
	}

	log.Printf("Admin user %q created (id=%d)", admin.Username, admin.ID)
	return nil
}

func seedEvents(ctx context.Context, gormDB *gorm.DB) (int, error) {
	eventRepo := repository.NewEventRepository(gormDB)

	existing, err := eventRepo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Printf("Found %d existing events, skipping event seed", len(existing))
		return 0, nil
	}

	now := time.Now()
	samples := []model.Event{
		{
			Title:     "Open Air Cinema Night",
			Date:      now.AddDate(0, 0, 14),
			Category:  "Culture",
			Latitude:  decimal.RequireFromString("47.376900"),
			Longitude: decimal.RequireFromString("8.541700"),
			Status:    model.EventStatusUpcoming,
		},
		{
			Title:     "City Marathon",
			Date:      now.AddDate(0, 1, 0),
			Category:  "Sports",
			Latitude:  decimal.RequireFromString("47.559600"),
			Longitude: decimal.RequireFromString("7.588600"),
			Status:    model.EventStatusUpcoming,
		},
		{
			Title:     "Tech Meetup: Backend Engineering",
			Date:      now.AddDate(0, 0, 7),
			Category:  "Technology",
			Latitude:  decimal.RequireFromString("46.948100"),
			Longitude: decimal.RequireFromString("7.447400"),
			Status:    model.EventStatusUpcoming,
		},
	}

	created := 0
	for i := range samples {
		if err := eventRepo.Create(ctx, &samples[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
