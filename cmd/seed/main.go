package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mindwell/internal/app"
	"mindwell/internal/config"
	"mindwell/internal/logger"
	"mindwell/internal/model"
)

type seedUser struct {
	RegistrationNumber string
	Email              string
	FullName           string
	Role               model.Role
	Password           string
}

func demoUsers() []seedUser {
	staffPassword := os.Getenv("SEED_STAFF_PASSWORD")
	if staffPassword == "" {
		staffPassword = "admin123"
	}
	return []seedUser{
		{RegistrationNumber: "220014748", Email: "student@university.edu", FullName: "John Doe", Role: model.RoleStudent},
		{Email: "admin@university.edu", FullName: "Admin User", Role: model.RoleAdmin, Password: staffPassword},
		{Email: "superadmin@university.edu", FullName: "Super Admin", Role: model.RoleSuperAdmin, Password: staffPassword},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := app.Connect(ctx, cfg, log)
	if err != nil {
		log.Fatal("connect", "error", err)
	}
	defer a.Close(context.Background())

	if err := a.EnsureIndexes(ctx); err != nil {
		log.Fatal("ensure indexes", "error", err)
	}

	created := 0
	for _, su := range demoUsers() {
		existing, err := a.Users.FindByEmail(ctx, su.Email)
		if err != nil {
			log.Fatal("lookup user", "email", su.Email, "error", err)
		}
		if existing != nil {
			log.Info("user already present, skipping", "email", su.Email)
			continue
		}

		now := time.Now().UTC()
		user := &model.User{
			ID:                 uuid.NewString(),
			RegistrationNumber: su.RegistrationNumber,
			Email:              su.Email,
			FullName:           su.FullName,
			Role:               su.Role,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if su.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
			if err != nil {
				log.Fatal("hash password", "error", err)
			}
			user.PasswordHash = string(hash)
		}
		if err := a.Users.Create(ctx, user); err != nil {
			log.Fatal("create user", "email", su.Email, "error", err)
		}
		created++
		log.Info("seeded user", "email", su.Email, "role", su.Role)
	}

	log.Info("seed complete", "created", created)
}
