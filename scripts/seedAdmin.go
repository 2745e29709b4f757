package main

import (
	"log"

	"lms/config"
	"lms/database"
	"lms/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	if config.AppConfig.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD must be set to seed the admin account")
	}

	// Skip if the admin account already exists
	var existing models.User
	if err := db.Where("email = ?", config.AppConfig.AdminEmail).First(&existing).Error; err == nil {
		log.Printf("Admin account %s already exists, nothing to do", config.AppConfig.AdminEmail)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(config.AppConfig.AdminPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := models.User{
		FullName: "Administrator",
		Email:    config.AppConfig.AdminEmail,
		Role:     "ADMIN",
		Password: string(hashedPassword),
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	log.Printf("Admin account %s created", admin.Email)
}
