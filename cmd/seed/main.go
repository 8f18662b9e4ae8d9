// Command seed creates the default admin and organizer accounts.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/config"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/db"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/logger"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository/dao"
)

type account struct {
	name     string
	email    string
	password string
	role     domain.Role
}

var accounts = []account{
	{name: "Admin", email: "admin@manageevent.com", password: "admin123", role: domain.RoleAdmin},
	{name: "Organizer", email: "organizer@manageevent.com", password: "organizer123", role: domain.RoleOrganizer},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}
	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	postgresDB, err := db.Open(conf.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}
	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(dao.NewUserDAO(postgresDB))
	for _, a := range accounts {
		if err = seed(ctx, users, a); err != nil {
			return err
		}
	}

	return nil
}

// seed skips accounts whose email is already taken.
func seed(ctx context.Context, users *repository.UserRepository, a account) error {
	_, err := users.FindByEmail(ctx, a.email)
	if err == nil {
		zap.L().Info("account already exists", zap.String("email", a.email))
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("users.FindByEmail -> %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	user, err := users.Create(ctx, domain.User{
		Name:     a.name,
		Email:    a.email,
		Password: string(hash),
		Role:     a.role,
	})
	if err != nil {
		return fmt.Errorf("users.Create -> %w", err)
	}

	zap.L().Info("account created",
		zap.Uint("id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	return nil
}
