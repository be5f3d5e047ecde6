package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/config"
	"github.com/yeremiapane/hotel-management-app/database"
	"github.com/yeremiapane/hotel-management-app/jobs"
	"github.com/yeremiapane/hotel-management-app/models"
	"github.com/yeremiapane/hotel-management-app/notifications"
	"github.com/yeremiapane/hotel-management-app/router"
	"github.com/yeremiapane/hotel-management-app/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	if err := utils.InitJWT(os.Getenv("JWT_SECRET")); err != nil {
		utils.ErrorLogger.Fatalf("Failed to initialise JWT: %v", err)
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	mailer, err := notifications.NewBrevoMailer(
		os.Getenv("BREVO_API_KEY"),
		os.Getenv("EMAIL_SENDER"),
		os.Getenv("EMAIL_SENDER_NAME"),
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to initialise mailer: %v", err)
	}

	receiptsDir := config.Getenv("RECEIPTS_DIR", "public/receipts")

	reminder := jobs.NewReminderJob(db, mailer)
	if err := reminder.Start(); err != nil {
		utils.ErrorLogger.Fatalf("Failed to start reminder job: %v", err)
	}
	defer reminder.Stop()

	r := router.SetupRouter(db, receiptsDir, mailer)

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := config.Getenv("PORT", "8080")
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Room{},
		&models.Policy{},
		&models.Price{},
		&models.Reservation{},
		&models.Payment{},
		&models.Receipt{},
		&models.Refund{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if err := database.ExecuteTriggers(db); err != nil {
		utils.ErrorLogger.Printf("Error setting up triggers: %v", err)
	}
}
