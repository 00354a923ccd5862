// Package main provides staff management utilities for Ripple.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go promote <user_id>                - Grant staff and superuser flags")
		fmt.Println("  go run ./cmd/admin/main.go demote <user_id>                 - Revoke staff and superuser flags")
		fmt.Println("  go run ./cmd/admin/main.go create <email> <password>        - Create a superuser account")
		fmt.Println("  go run ./cmd/admin/main.go list-staff                       - List all staff users")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go promote <user_id>")
			os.Exit(1)
		}
		setStaff(db, os.Args[2], true)

	case "demote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go demote <user_id>")
			os.Exit(1)
		}
		setStaff(db, os.Args[2], false)

	case "create":
		if len(os.Args) < 4 {
			fmt.Println("Usage: go run ./cmd/admin/main.go create <email> <password>")
			os.Exit(1)
		}
		createSuperuser(db, os.Args[2], os.Args[3])

	case "list-staff":
		listStaff(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func setStaff(db *gorm.DB, userID string, staff bool) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.IsStaff == staff {
		fmt.Printf("User %s (ID: %d) already has is_staff=%v\n", user.UsernameOrEmail(), user.ID, staff)
		return
	}

	user.IsStaff = staff
	user.IsSuperuser = staff
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if staff {
		fmt.Printf("User %s (ID: %d) is now staff\n", user.UsernameOrEmail(), user.ID)
	} else {
		fmt.Printf("User %s (ID: %d) is no longer staff\n", user.UsernameOrEmail(), user.ID)
	}
}

func createSuperuser(db *gorm.DB, email, password string) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Email:       email,
		Password:    string(hashed),
		IsStaff:     true,
		IsSuperuser: true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create superuser: %v", err)
	}
	fmt.Printf("Superuser %s created with ID %d\n", email, user.ID)
}

func listStaff(db *gorm.DB) {
	var users []models.User
	if err := db.Where("is_staff = ?", true).Order("id").Find(&users).Error; err != nil {
		log.Fatalf("Database error: %v", err)
	}

	if len(users) == 0 {
		fmt.Println("No staff users found")
		return
	}

	fmt.Println("Staff users:")
	for _, u := range users {
		fmt.Printf("  %d: %s (%s) superuser=%v\n", u.ID, u.UsernameOrEmail(), u.Email, u.IsSuperuser)
	}
}
