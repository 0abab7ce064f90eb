package main

import (
	"fmt"
	"log"
	"time"

	"github.com/vidstreamhq/vidstream/internal/config"
	"github.com/vidstreamhq/vidstream/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load config
	cfg := config.Load()

	// Force DB logging off to avoid noise
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to Database")

	// Common password for all seeded users
	password := "password123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	log.Println("🌱 Seeding 5 users with profiles and devices...")

	for i := 1; i <= 5; i++ {
		email := fmt.Sprintf("user%d@vidstream.local", i)

		// Skip users that already exist
		var existing model.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			continue
		}

		user := model.User{
			Email:    email,
			Password: string(hashedPassword),
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("❌ Failed to create user %s: %v", email, err)
			continue
		}
		log.Printf("✅ Created user: %s | Pass: %s", email, password)

		profiles := []model.Profile{
			{UserID: user.ID, Name: model.DefaultProfileName, Language: "ko", MaturityRating: "ALL"},
			{UserID: user.ID, Name: fmt.Sprintf("키즈 %d", i), IsKids: true, Language: "ko", MaturityRating: "ALL"},
		}
		for _, p := range profiles {
			if err := db.Create(&p).Error; err != nil {
				log.Printf("❌ Failed to create profile %s: %v", p.Name, err)
			}
		}

		deviceType := "tv"
		device := model.Device{
			UserID:       user.ID,
			DeviceID:     fmt.Sprintf("seed-device-%d", i),
			DeviceName:   fmt.Sprintf("Living Room TV %d", i),
			DeviceType:   &deviceType,
			LastActiveAt: time.Now(),
		}
		if err := db.Create(&device).Error; err != nil {
			log.Printf("❌ Failed to create device for %s: %v", email, err)
		}
	}

	log.Println("🎉 Seeding completed!")
}
