package database

import (
	"fmt"
	"log"

	config "github.com/amrshakerr/editor_portfolio/configs"
	"github.com/amrshakerr/editor_portfolio/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Review{},
		&models.OwnerReply{},
		&models.Project{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// SeedOwner creates the single owner account used for moderation. Visitors
// never get accounts; review authorship is proven with delete tokens instead.
func SeedOwner() {
	ownerEmail := config.Config("OWNER_EMAIL")
	ownerPassword := config.Config("OWNER_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", ownerEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for owner user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Owner user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash owner password: %v", err)
		return
	}

	ownerUser := models.User{
		FullName: config.Config("OWNER_FULL_NAME"),
		Email:    ownerEmail,
		Password: string(hashedPassword),
		Role:     "owner",
	}

	if err := DB.Create(&ownerUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed owner user: %v", err)
		return
	}

	log.Println("✅ Owner user seeded successfully")
}
