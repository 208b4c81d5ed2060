package database

import (
	"fmt"
	"log"
	"os"

	"ngo-portal/internal/domain/blog"
	"ngo-portal/internal/domain/donations"
	"ngo-portal/internal/domain/events"
	"ngo-portal/internal/domain/memberships"
	"ngo-portal/internal/domain/newsletter"
	"ngo-portal/internal/domain/programs"
	"ngo-portal/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Needed so replayed payment confirmations can detect the unique
		// index on (razorpay_payment_id) as a duplicate-key error.
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// portal accounts
		&users.User{},
		&users.VerificationToken{},

		// paid records
		&memberships.Membership{},
		&donations.Donation{},

		// content
		&blog.Post{},
		&programs.Program{},
		&newsletter.Subscriber{},
		&events.Event{},
		&events.Registration{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
